package queue

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/voidshard/easel/pkg/errors"
	"github.com/voidshard/easel/pkg/structs"
)

const (
	asynqQueuePrefix = "generation:p"

	// priorities are clamped into this many bands; each band is its own asynq queue
	priorityBands = 10
)

type Asynq struct {
	opts *Options
	log  zerolog.Logger

	// the asynq client & inspector
	ins *asynq.Inspector
	cli *asynq.Client
	rdb asynq.RedisConnOpt

	// if register is called we're intended to start a server
	lock sync.Mutex
	mux  *asynq.ServeMux
	srv  *asynq.Server
	done chan struct{}
}

func NewAsynqQueue(opts *Options) (*Asynq, error) {
	opts.SetDefaults()
	rdb, err := redisOpt(opts)
	if err != nil {
		return nil, err
	}
	return &Asynq{
		opts: opts,
		log:  opts.Logger.With().Str("component", "queue").Logger(),
		ins:  asynq.NewInspector(rdb),
		cli:  asynq.NewClient(rdb),
		rdb:  rdb,
		done: make(chan struct{}),
	}, nil
}

func (a *Asynq) Close() error {
	a.lock.Lock()
	defer a.lock.Unlock()

	select {
	case <-a.done:
		return nil // already closed
	default:
		close(a.done)
	}

	if a.srv != nil {
		a.srv.Stop()
		a.srv.Shutdown()
	}
	errs := []error{a.cli.Close(), a.ins.Close()}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *Asynq) Register(task string, handler Handler) error {
	a.buildServer()
	a.mux.HandleFunc(task, func(ctx context.Context, t *asynq.Task) error {
		m := &Meta{JobID: string(t.Payload())}
		m.Retried, _ = asynq.GetRetryCount(ctx)
		m.MaxRetry, _ = asynq.GetMaxRetry(ctx)

		err := handler(ctx, m)
		if err != nil && errors.IsPermanent(err) {
			// we know retrying will not help
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	})
	return nil
}

func (a *Asynq) Run() error {
	a.lock.Lock()
	if a.srv == nil {
		a.lock.Unlock()
		return fmt.Errorf("%w: no handlers registered", errors.ErrInvalidState)
	}
	err := a.srv.Start(a.mux)
	a.lock.Unlock()
	if err != nil {
		return err
	}
	<-a.done
	return nil
}

func (a *Asynq) Enqueue(task string, job *structs.Job) (string, error) {
	qtask := asynq.NewTask(task, []byte(job.ID))
	info, err := a.cli.Enqueue(
		qtask,
		asynq.TaskID(job.ID),
		asynq.Queue(queueName(job.Priority)),
		asynq.MaxRetry(a.opts.MaxAttempts-1),
		asynq.Timeout(a.opts.TaskTimeout),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return "", fmt.Errorf("%w: job %s is already queued", errors.ErrInvalidState, job.ID)
	} else if err != nil {
		return "", err
	}
	return info.ID, nil
}

func (a *Asynq) Kill(job *structs.Job) error {
	id := job.QueueTaskID
	if id == "" {
		id = job.ID
	}
	err := a.ins.DeleteTask(queueName(job.Priority), id)
	if err == nil || errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	// the task is active; best effort cancel, asynq can't guarantee this will kill it
	return a.ins.CancelProcessing(id)
}

func (a *Asynq) buildServer() {
	a.lock.Lock()
	defer a.lock.Unlock()
	if a.mux != nil {
		// someone locked and set this first
		return
	}
	srv := asynq.NewServer(
		a.rdb,
		asynq.Config{
			Concurrency:     a.opts.Concurrency,
			Queues:          queueWeights(),
			StrictPriority:  true,
			RetryDelayFunc:  backoff(a.opts.RetryBase, a.opts.RetryCap),
			ShutdownTimeout: a.opts.ShutdownTimeout,
			Logger:          &asynqLogger{log: a.log},
			LogLevel:        asynqLogLevel(a.log.GetLevel()),
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, t *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				a.log.Warn().Err(err).Str("job_id", string(t.Payload())).Int("attempt", retried+1).Msg("attempt failed")
			}),
		},
	)
	a.srv = srv
	a.mux = asynq.NewServeMux()
}

// queueName returns the asynq queue for a priority, clamped into [0, priorityBands).
func queueName(priority int) string {
	if priority < 0 {
		priority = 0
	} else if priority >= priorityBands {
		priority = priorityBands - 1
	}
	return fmt.Sprintf("%s%d", asynqQueuePrefix, priority)
}

// queueWeights gives higher bands higher weights; with StrictPriority a lower band is only
// read once every higher band is empty.
func queueWeights() map[string]int {
	out := map[string]int{}
	for i := 0; i < priorityBands; i++ {
		out[queueName(i)] = i + 1
	}
	return out
}

// backoff doubles from base for each retry, up to limit.
func backoff(base, limit time.Duration) asynq.RetryDelayFunc {
	return func(n int, _ error, _ *asynq.Task) time.Duration {
		if n < 0 {
			n = 0
		}
		if n > 30 {
			return limit
		}
		d := base << uint(n)
		if d <= 0 || d > limit {
			return limit
		}
		return d
	}
}

func redisOpt(opts *Options) (asynq.RedisConnOpt, error) {
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		return nil, fmt.Errorf("%w: queue url is required", errors.ErrInvalidArg)
	}
	if !strings.Contains(url, "://") {
		// plain host:port
		return asynq.RedisClientOpt{Addr: url, TLSConfig: opts.TLSConfig}, nil
	}
	parsed, err := asynq.ParseRedisURI(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidArg, err)
	}
	if o, ok := parsed.(asynq.RedisClientOpt); ok && opts.TLSConfig != nil {
		o.TLSConfig = opts.TLSConfig
		return o, nil
	}
	return parsed, nil
}
