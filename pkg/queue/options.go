package queue

import (
	"crypto/tls"
	"time"

	"github.com/rs/zerolog"
)

const (
	defConcurrency     = 5
	defMaxAttempts     = 3
	defTaskTimeout     = 5*time.Minute + 30*time.Second
	defRetryBase       = 5 * time.Second
	defRetryCap        = 5 * time.Minute
	defShutdownTimeout = 30 * time.Second
)

// Options are options for the queue.
type Options struct {
	// URL encodes how we'll connect to the queue, eg. redis://localhost:6379/0
	URL string

	// TLSConfig needed to connect to the queue (optional).
	TLSConfig *tls.Config

	// Concurrency is the number of jobs a worker process handles at once.
	Concurrency int

	// MaxAttempts is the number of times a job is attempted before it is given up on.
	MaxAttempts int

	// TaskTimeout is the longest a single attempt may run before its context is cancelled.
	// This should be a little longer than the compute timeout so that the compute client
	// reports the timeout itself.
	TaskTimeout time.Duration

	// RetryBase & RetryCap bound the exponential backoff between attempts.
	RetryBase time.Duration
	RetryCap  time.Duration

	// ShutdownTimeout is how long Close waits for in flight jobs.
	ShutdownTimeout time.Duration

	// Logger receives the queue's internal logs.
	Logger *zerolog.Logger
}

func (o *Options) SetDefaults() {
	if o.Concurrency <= 0 {
		o.Concurrency = defConcurrency
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defMaxAttempts
	}
	if o.TaskTimeout <= 0 {
		o.TaskTimeout = defTaskTimeout
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defRetryBase
	}
	if o.RetryCap <= 0 {
		o.RetryCap = defRetryCap
	}
	if o.RetryCap < o.RetryBase {
		o.RetryCap = o.RetryBase
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = defShutdownTimeout
	}
	if o.Logger == nil {
		l := zerolog.Nop()
		o.Logger = &l
	}
}
