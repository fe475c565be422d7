package api

import (
	"context"

	"github.com/voidshard/easel/pkg/structs"
)

// API represents the functions Easel servers should expose.
type API interface {
	// Implemented in easel/internal/core.Service

	Submit(ctx context.Context, req *structs.SubmitRequest) (*structs.Job, error)
	Job(ctx context.Context, id string) (*structs.JobView, error)
	Jobs(ctx context.Context, q *structs.Query) ([]*structs.Job, error)
	Cancel(ctx context.Context, id string) error
	Retry(ctx context.Context, id string) (*structs.Job, error)
	Delete(ctx context.Context, id string) error

	CreateWorkboard(ctx context.Context, spec *structs.WorkboardSpec) (*structs.Workboard, error)
	Workboard(ctx context.Context, id string) (*structs.Workboard, error)
	Workboards(ctx context.Context, q *structs.Query) ([]*structs.Workboard, error)

	Media(ctx context.Context, q *structs.Query) ([]*structs.Media, error)
}

// Worker is an API that also processes queued jobs.
type Worker interface {
	API

	// Run processes jobs until Close is called.
	Run() error
	Close() error
}

type Server interface {
	ServeForever(api API) error
	Close() error
}
