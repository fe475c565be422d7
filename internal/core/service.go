package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/voidshard/easel/internal/utils"
	"github.com/voidshard/easel/pkg/database"
	"github.com/voidshard/easel/pkg/errors"
	"github.com/voidshard/easel/pkg/media"
	"github.com/voidshard/easel/pkg/queue"
	"github.com/voidshard/easel/pkg/render"
	"github.com/voidshard/easel/pkg/structs"
)

const (
	// TaskGenerate is the queue task type for generation jobs
	TaskGenerate = "generate"

	// max values
	maxNameLength   = 500
	maxPromptLength = 20000
)

var (
	// timeNow returns the current time in unix milliseconds
	timeNow = func() int64 {
		return time.Now().UnixMilli()
	}

	activeStates    = []structs.Status{structs.PENDING, structs.PROCESSING}
	deletableStates = []structs.Status{structs.PENDING, structs.COMPLETED, structs.FAILED, structs.CANCELLED}
)

// Service runs generation jobs: it records & queues submissions and (via Run) processes them.
type Service struct {
	db        database.Database
	qu        queue.Queue
	compute   Compute
	images    ImageSource
	persister *media.Persister
	renderer  *render.Renderer

	opts *Options
	log  zerolog.Logger
}

func NewService(db database.Database, qu queue.Queue, compute Compute, images ImageSource, persister *media.Persister, opts *Options) (*Service, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.SetDefaults()
	return &Service{
		db:        db,
		qu:        qu,
		compute:   compute,
		images:    images,
		persister: persister,
		renderer:  render.New(nil),
		opts:      opts,
		log:       opts.Logger.With().Str("component", "core").Logger(),
	}, nil
}

// Run registers the job pipeline with the queue and processes jobs until Close is called.
func (c *Service) Run() error {
	if err := c.qu.Register(TaskGenerate, c.processJob); err != nil {
		return err
	}
	return c.qu.Run()
}

func (c *Service) Close() error {
	qerr := c.qu.Close()
	derr := c.db.Close()
	if qerr != nil {
		return qerr
	}
	return derr
}

// Submit records a new job against a workboard & queues it.
func (c *Service) Submit(ctx context.Context, req *structs.SubmitRequest) (*structs.Job, error) {
	if req == nil || strings.TrimSpace(req.WorkboardID) == "" {
		return nil, fmt.Errorf("%w: workboardId", errors.ErrMissingField)
	}
	wb, err := c.db.Workboard(ctx, req.WorkboardID)
	if err != nil {
		return nil, err
	}
	err = c.validateInput(ctx, wb, &req.Input)
	if err != nil {
		return nil, err
	}

	maxRetries := req.MaxRetries
	if maxRetries <= 0 {
		maxRetries = c.opts.MaxRetries
	}

	id := utils.NewRandomID()
	job := &structs.Job{
		ID:           id,
		UserID:       req.UserID,
		Status:       structs.PENDING,
		Priority:     req.Priority,
		Input:        req.Input,
		Workboard:    wb.Ref(),
		ResultImages: []string{},
		ResultVideos: []string{},
		MaxRetries:   maxRetries,
		QueueTaskID:  id,
	}
	if err := c.enqueue(ctx, job); err != nil {
		return nil, err
	}
	c.log.Info().Str("job_id", id).Str("workboard_id", wb.ID).Int("priority", job.Priority).Msg("job submitted")
	return job, nil
}

// Job returns a job & any media it produced.
func (c *Service) Job(ctx context.Context, id string) (*structs.JobView, error) {
	job, err := c.db.Job(ctx, id)
	if err != nil {
		return nil, err
	}
	found, err := c.db.Media(ctx, &structs.Query{JobIDs: []string{id}})
	if err != nil {
		return nil, err
	}
	return &structs.JobView{Job: job, Media: found}, nil
}

func (c *Service) Jobs(ctx context.Context, q *structs.Query) ([]*structs.Job, error) {
	if q == nil {
		q = &structs.Query{}
	}
	q.Sanitize()
	return c.db.Jobs(ctx, q)
}

// Cancel stops a pending or processing job.
//
// The job is marked cancelled first; a worker holding it notices & discards whatever it
// produces. We then remove it from the queue and ask the compute server to interrupt.
func (c *Service) Cancel(ctx context.Context, id string) error {
	job, err := c.db.Job(ctx, id)
	if err != nil {
		return err
	}
	if !structs.CanTransition(job.Status, structs.CANCELLED) {
		return fmt.Errorf("%w: job %s is %s", errors.ErrInvalidState, id, job.Status)
	}

	inFlight := job.Status == structs.PROCESSING

	// status only, a worker may be writing progress or the resolved seed concurrently
	ok, err := c.db.SetJobStatus(ctx, id, structs.CANCELLED, timeNow(), activeStates)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: job %s finished before it could be cancelled", errors.ErrInvalidState, id)
	}

	log := c.log.With().Str("job_id", id).Logger()
	if err := c.qu.Kill(job); err != nil {
		log.Warn().Err(err).Msg("failed to remove job from queue")
	}
	if inFlight {
		err := c.compute.Interrupt(ctx, job.Workboard.ServerAddress)
		if err != nil {
			log.Warn().Err(err).Str("server", job.Workboard.ServerAddress).Msg("failed to interrupt compute server")
		}
	}
	log.Info().Bool("in_flight", inFlight).Msg("job cancelled")
	return nil
}

// Retry spawns a new job from a failed job's input.
//
// The failed job is kept (with its retry count incremented) and the new job points back to
// it via ParentID.
func (c *Service) Retry(ctx context.Context, id string) (*structs.Job, error) {
	parent, err := c.db.Job(ctx, id)
	if err != nil {
		return nil, err
	}
	if parent.Status != structs.FAILED {
		return nil, fmt.Errorf("%w: only failed jobs can be retried, job %s is %s", errors.ErrInvalidState, id, parent.Status)
	}
	if parent.RetryCount >= parent.MaxRetries {
		return nil, fmt.Errorf("%w: job %s retried %d/%d times", errors.ErrMaxRetries, id, parent.RetryCount, parent.MaxRetries)
	}

	parent.RetryCount++
	ok, err := c.db.UpdateJob(ctx, parent, []structs.Status{structs.FAILED})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: job %s changed while retrying", errors.ErrInvalidState, id)
	}

	child := spawn(parent)
	if err := c.enqueue(ctx, child); err != nil {
		return nil, err
	}
	c.log.Info().Str("job_id", child.ID).Str("parent_id", parent.ID).Int("retry", parent.RetryCount).Msg("job retried")
	return child, nil
}

// Delete removes a job record. Jobs that are processing cannot be deleted; media they
// produced is kept.
func (c *Service) Delete(ctx context.Context, id string) error {
	job, err := c.db.Job(ctx, id)
	if err != nil {
		return err
	}
	ok, err := c.db.DeleteJob(ctx, id, deletableStates)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: job %s is processing", errors.ErrInvalidState, id)
	}
	if job.Status == structs.PENDING {
		if err := c.qu.Kill(job); err != nil {
			c.log.Warn().Err(err).Str("job_id", id).Msg("failed to remove deleted job from queue")
		}
	}
	return nil
}

// CreateWorkboard validates & records a new workboard.
func (c *Service) CreateWorkboard(ctx context.Context, spec *structs.WorkboardSpec) (*structs.Workboard, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: workboard", errors.ErrMissingField)
	}
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("%w: name", errors.ErrMissingField)
	}
	if len(spec.Name) > maxNameLength {
		return nil, fmt.Errorf("%w: name is %d chars, max %d", errors.ErrMaxExceeded, len(spec.Name), maxNameLength)
	}
	if strings.TrimSpace(spec.ServerAddress) == "" {
		return nil, fmt.Errorf("%w: serverAddress", errors.ErrMissingField)
	}

	wb := &structs.Workboard{WorkboardSpec: *spec, ID: utils.NewRandomID()}
	ref := wb.Ref()
	if err := render.Validate(&ref); err != nil {
		return nil, err
	}
	return wb, c.db.InsertWorkboard(ctx, wb)
}

func (c *Service) Workboard(ctx context.Context, id string) (*structs.Workboard, error) {
	return c.db.Workboard(ctx, id)
}

func (c *Service) Workboards(ctx context.Context, q *structs.Query) ([]*structs.Workboard, error) {
	if q == nil {
		q = &structs.Query{}
	}
	q.Sanitize()
	return c.db.Workboards(ctx, q)
}

func (c *Service) Media(ctx context.Context, q *structs.Query) ([]*structs.Media, error) {
	if q == nil {
		q = &structs.Query{}
	}
	q.Sanitize()
	return c.db.Media(ctx, q)
}

// enqueue records a new job & hands it to the queue. If the queue refuses it, the job is
// failed so that it is not left pending forever.
func (c *Service) enqueue(ctx context.Context, job *structs.Job) error {
	if err := c.db.InsertJob(ctx, job); err != nil {
		return err
	}

	qid, err := c.qu.Enqueue(TaskGenerate, job)
	if err != nil {
		job.Status = structs.FAILED
		job.Error = &structs.JobError{Message: err.Error(), Code: errors.CodeInternal, Details: "enqueue failed"}
		job.CompletedAt = timeNow()
		if _, uerr := c.db.UpdateJob(ctx, job, []structs.Status{structs.PENDING}); uerr != nil {
			c.log.Error().Err(uerr).Str("job_id", job.ID).Msg("failed to record enqueue failure")
		}
		return err
	}

	if qid != job.QueueTaskID {
		job.QueueTaskID = qid
		if _, err := c.db.UpdateJob(ctx, job, []structs.Status{structs.PENDING}); err != nil {
			c.log.Warn().Err(err).Str("job_id", job.ID).Msg("failed to record queue task id")
		}
	}
	return nil
}

// validateInput checks a job's input against a workboard before it is queued.
func (c *Service) validateInput(ctx context.Context, wb *structs.Workboard, in *structs.JobInput) error {
	if len(in.Prompt) > maxPromptLength {
		return fmt.Errorf("%w: prompt is %d chars, max %d", errors.ErrMaxExceeded, len(in.Prompt), maxPromptLength)
	}
	for _, f := range wb.AdditionalInputFields {
		if !f.Required {
			continue
		}
		if _, ok := in.Param(f.Name); !ok && f.DefaultValue.IsEmpty() {
			return fmt.Errorf("%w: %s", errors.ErrMissingField, f.Name)
		}
	}
	for i, ref := range in.ReferenceImages {
		if strings.TrimSpace(ref.ImageID) == "" {
			return fmt.Errorf("%w: reference image %d has no imageId", errors.ErrInvalidArg, i)
		}
		ok, err := c.images.Exists(ctx, ref.ImageID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: reference image %s is not a stored image", errors.ErrInvalidArg, ref.ImageID)
		}
	}
	return nil
}

// spawn builds a new pending job from a parent's input & workboard snapshot.
func spawn(parent *structs.Job) *structs.Job {
	id := utils.NewRandomID()
	return &structs.Job{
		ID:           id,
		UserID:       parent.UserID,
		Status:       structs.PENDING,
		Priority:     parent.Priority,
		Input:        parent.Input,
		Workboard:    parent.Workboard,
		ResultImages: []string{},
		ResultVideos: []string{},
		RetryCount:   parent.RetryCount,
		MaxRetries:   parent.MaxRetries,
		ParentID:     parent.ID,
		QueueTaskID:  id,
	}
}
