package queue

import (
	"context"
	"crypto/tls"
	"fmt"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/voidshard/easel/pkg/errors"
)

func TestQueueName(t *testing.T) {
	cases := []struct {
		Name   string
		Given  int
		Expect string
	}{
		{"Negative", -4, "generation:p0"},
		{"Zero", 0, "generation:p0"},
		{"Mid", 5, "generation:p5"},
		{"Top", 9, "generation:p9"},
		{"Clamped", 100, "generation:p9"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, queueName(c.Given))
		})
	}
}

func TestQueueWeights(t *testing.T) {
	result := queueWeights()

	assert.Equal(t, priorityBands, len(result))
	for i := 1; i < priorityBands; i++ {
		assert.Greater(t, result[queueName(i)], result[queueName(i-1)])
	}
}

func TestBackoff(t *testing.T) {
	fn := backoff(time.Second, 10*time.Second)

	cases := []struct {
		Name   string
		Given  int
		Expect time.Duration
	}{
		{"First", 0, time.Second},
		{"Second", 1, 2 * time.Second},
		{"Third", 2, 4 * time.Second},
		{"Capped", 4, 10 * time.Second},
		{"Huge", 200, 10 * time.Second},
		{"Negative", -1, time.Second},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, fn(c.Given, nil, nil))
		})
	}
}

func TestRedisOpt(t *testing.T) {
	cfg := &tls.Config{}

	cases := []struct {
		Name      string
		Given     *Options
		ExpectErr bool
		Expect    asynq.RedisConnOpt
	}{
		{
			Name:   "HostPort",
			Given:  &Options{URL: "localhost:6379"},
			Expect: asynq.RedisClientOpt{Addr: "localhost:6379"},
		},
		{
			Name:   "URI",
			Given:  &Options{URL: "redis://localhost:6380/2"},
			Expect: asynq.RedisClientOpt{Addr: "localhost:6380", DB: 2},
		},
		{
			Name:   "URIWithTLS",
			Given:  &Options{URL: "redis://localhost:6380/2", TLSConfig: cfg},
			Expect: asynq.RedisClientOpt{Addr: "localhost:6380", DB: 2, TLSConfig: cfg},
		},
		{
			Name:      "Empty",
			Given:     &Options{},
			ExpectErr: true,
		},
		{
			Name:      "BadScheme",
			Given:     &Options{URL: "ftp://localhost"},
			ExpectErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			result, err := redisOpt(c.Given)

			if c.ExpectErr {
				assert.ErrorIs(t, err, errors.ErrInvalidArg)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, c.Expect, result)
		})
	}
}

func TestRegister(t *testing.T) {
	cases := []struct {
		Name       string
		Given      error
		ExpectNil  bool
		ExpectSkip bool
	}{
		{Name: "Success", ExpectNil: true},
		{Name: "Retryable", Given: fmt.Errorf("%w: 503", errors.ErrRemote)},
		{Name: "Permanent", Given: errors.Permanent(errors.ErrRender), ExpectSkip: true},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			qu, err := NewAsynqQueue(&Options{URL: "localhost:6379"})
			assert.Nil(t, err)
			defer qu.Close()

			var seen *Meta
			err = qu.Register("generate", func(ctx context.Context, m *Meta) error {
				seen = m
				return c.Given
			})
			assert.Nil(t, err)

			err = qu.mux.ProcessTask(context.Background(), asynq.NewTask("generate", []byte("job-1")))

			assert.Equal(t, "job-1", seen.JobID)
			if c.ExpectNil {
				assert.Nil(t, err)
				return
			}
			assert.ErrorIs(t, err, c.Given)
			assert.Equal(t, c.ExpectSkip, errors.Is(err, asynq.SkipRetry))
		})
	}
}

func TestRunWithoutHandlers(t *testing.T) {
	qu, err := NewAsynqQueue(&Options{URL: "localhost:6379"})
	assert.Nil(t, err)
	defer qu.Close()

	err = qu.Run()

	assert.ErrorIs(t, err, errors.ErrInvalidState)
}

func TestCloseTwice(t *testing.T) {
	qu, err := NewAsynqQueue(&Options{URL: "localhost:6379"})
	assert.Nil(t, err)

	assert.Nil(t, qu.Close())
	assert.Nil(t, qu.Close())
}

func TestSetDefaults(t *testing.T) {
	opts := &Options{RetryBase: time.Minute, RetryCap: time.Second}

	opts.SetDefaults()

	assert.Equal(t, defConcurrency, opts.Concurrency)
	assert.Equal(t, defMaxAttempts, opts.MaxAttempts)
	assert.Equal(t, defTaskTimeout, opts.TaskTimeout)
	assert.Equal(t, time.Minute, opts.RetryCap)
	assert.NotNil(t, opts.Logger)
}

func TestAsynqLogLevel(t *testing.T) {
	cases := []struct {
		Name   string
		Given  zerolog.Level
		Expect asynq.LogLevel
	}{
		{"Trace", zerolog.TraceLevel, asynq.DebugLevel},
		{"Debug", zerolog.DebugLevel, asynq.DebugLevel},
		{"Info", zerolog.InfoLevel, asynq.InfoLevel},
		{"Warn", zerolog.WarnLevel, asynq.WarnLevel},
		{"Error", zerolog.ErrorLevel, asynq.ErrorLevel},
		{"Disabled", zerolog.Disabled, asynq.FatalLevel},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, asynqLogLevel(c.Given))
		})
	}
}
