package queue

import (
	"context"

	"github.com/voidshard/easel/pkg/structs"
)

// Handler processes one delivery of a queued job.
//
// Returning an error fails the attempt; the Queue retries it (with backoff) until attempts are
// exhausted, unless the error is marked permanent (see errors.Permanent).
type Handler func(ctx context.Context, m *Meta) error

type Queue interface {
	// Register a handler for the given task type. The queue delivers each queued job to exactly
	// one handler call at a time.
	Register(task string, handler Handler) error

	// Run the queue & process tasks (via Register funcs). This blocks until Close() is called.
	Run() error

	// Enqueue a job to be processed by the handler for `task`.
	//
	// Jobs are ordered by priority (higher first) and then by enqueue time. The returned id can
	// be given to Kill.
	Enqueue(task string, job *structs.Job) (string, error)

	// Kill removes a job from the queue if it is waiting, or asks the worker holding it to stop.
	// This is best effort.
	Kill(job *structs.Job) error

	// Close & shutdown the queue. In flight work is given time to finish.
	Close() error
}
