package database

import (
	"context"

	"github.com/voidshard/easel/pkg/structs"
)

// Database stores jobs, workboards & media records.
//
// Job writes are guarded by the job's current status: updates that pass `expect` only apply
// if the stored job is in one of those states, and report whether a row was changed. This is
// how racing writers (a worker finishing, a user cancelling) settle on a single outcome.
type Database interface {
	InsertJob(ctx context.Context, j *structs.Job) error
	Job(ctx context.Context, id string) (*structs.Job, error)
	Jobs(ctx context.Context, q *structs.Query) ([]*structs.Job, error)
	UpdateJob(ctx context.Context, j *structs.Job, expect []structs.Status) (bool, error)
	SetJobStatus(ctx context.Context, id string, status structs.Status, at int64, expect []structs.Status) (bool, error)
	SetJobProgress(ctx context.Context, id string, progress int) error
	DeleteJob(ctx context.Context, id string, expect []structs.Status) (bool, error)

	InsertWorkboard(ctx context.Context, w *structs.Workboard) error
	Workboard(ctx context.Context, id string) (*structs.Workboard, error)
	Workboards(ctx context.Context, q *structs.Query) ([]*structs.Workboard, error)

	InsertMedia(ctx context.Context, m *structs.Media) error
	Media(ctx context.Context, q *structs.Query) ([]*structs.Media, error)
	DeleteMedia(ctx context.Context, id string) error

	Close() error
}
