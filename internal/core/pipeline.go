package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/voidshard/easel/pkg/comfy"
	"github.com/voidshard/easel/pkg/errors"
	"github.com/voidshard/easel/pkg/media"
	"github.com/voidshard/easel/pkg/queue"
	"github.com/voidshard/easel/pkg/seed"
	"github.com/voidshard/easel/pkg/structs"
)

// errDiscarded means the job left processing (ie. it was cancelled) while we worked on it.
var errDiscarded = fmt.Errorf("job no longer processing")

// processJob is the queue handler for one attempt at a job.
//
// pending -> processing, then pre-upload, render, execute, persist, -> completed. An error
// returned to the queue means the attempt may be retried; the job is only marked failed on
// the final attempt or when retrying cannot help.
func (c *Service) processJob(ctx context.Context, m *queue.Meta) error {
	log := c.log.With().Str("job_id", m.JobID).Int("attempt", m.Attempt()).Logger()

	job, err := c.db.Job(ctx, m.JobID)
	if errors.Is(err, errors.ErrNotFound) {
		log.Warn().Msg("job not found, dropping")
		return nil
	} else if err != nil {
		return err
	}
	if structs.IsFinalStatus(job.Status) {
		log.Debug().Str("status", string(job.Status)).Msg("job already finished, dropping")
		return nil
	}

	now := timeNow()
	job.Status = structs.PROCESSING
	job.Attempts = m.Attempt()
	job.Progress = 0
	if job.StartedAt == 0 {
		job.StartedAt = now
	}
	ok, err := c.db.UpdateJob(ctx, job, activeStates)
	if err != nil {
		return err
	}
	if !ok {
		log.Info().Msg("job cancelled before it started")
		return nil
	}
	log.Info().Str("server", job.Workboard.ServerAddress).Msg("processing job")

	err = c.generate(ctx, job, log)
	if err == nil {
		log.Info().Int64("actual_time", job.ActualTime).Int("images", len(job.ResultImages)).Int("videos", len(job.ResultVideos)).Msg("job completed")
		return nil
	}
	if errors.Is(err, errDiscarded) {
		log.Info().Msg("job cancelled while processing, results discarded")
		return nil
	}
	return c.failAttempt(ctx, job, m, err, log)
}

// generate runs a single attempt, marking the job completed on success.
func (c *Service) generate(ctx context.Context, job *structs.Job, log zerolog.Logger) error {
	prog := newProgress(ctx, c.db, job.ID, log)
	server := job.Workboard.ServerAddress

	uploads, err := c.preupload(ctx, job, log)
	if err != nil {
		return err
	}
	prog.set(progressUploaded)

	res, err := c.renderer.Render(&job.Workboard, &job.Input, uploads)
	if err != nil {
		return err
	}
	if res.Seed.Source != seed.SourceUser || res.Seed.Flipped {
		log.Debug().Str("seed_source", string(res.Seed.Source)).Str("original", res.Seed.Original).Uint64("seed", res.Seed.Seed).Msg("seed resolved")
	}
	// recorded now so that a later attempt or retry reproduces this one exactly
	job.Input.Seed = structs.Uint(res.Seed.Seed)
	job.Input.UseRandomSeed = false
	job.Progress = progressRendered
	ok, err := c.db.UpdateJob(ctx, job, []structs.Status{structs.PROCESSING})
	if err != nil {
		return err
	}
	if !ok {
		return errDiscarded
	}
	prog.written(progressRendered)

	result, err := c.compute.Execute(ctx, server, res.Document, prog.remote)
	if err != nil {
		return err
	}

	if c.discarded(ctx, job.ID) {
		return errDiscarded
	}
	prog.set(progressExecuted)

	items := toItems(result.Outputs)
	if len(items) == 0 {
		return errors.Permanent(fmt.Errorf("%w: server produced no outputs", errors.ErrNoMedia))
	}
	persisted := c.persister.Persist(ctx, job, res.Params, items)
	if len(persisted) == 0 {
		return fmt.Errorf("%w: none of %d outputs could be stored", errors.ErrNoMedia, len(items))
	}

	now := timeNow()
	job.Status = structs.COMPLETED
	job.Progress = 100
	job.Error = nil
	job.CompletedAt = now
	job.ActualTime = now - job.StartedAt
	job.ResultImages, job.ResultVideos = []string{}, []string{}
	for _, m := range persisted {
		if m.Kind == structs.MediaVideo {
			job.ResultVideos = append(job.ResultVideos, m.ID)
		} else {
			job.ResultImages = append(job.ResultImages, m.ID)
		}
	}

	ok, err = c.db.UpdateJob(context.WithoutCancel(ctx), job, []structs.Status{structs.PROCESSING})
	if err == nil && ok {
		return nil
	}
	// results are only kept on a completed job
	if rerr := c.persister.Remove(context.WithoutCancel(ctx), persisted); rerr != nil {
		log.Warn().Err(rerr).Msg("failed to remove discarded media")
	}
	job.ResultImages, job.ResultVideos = []string{}, []string{}
	if err != nil {
		return err
	}
	return errDiscarded
}

// failAttempt records a failed attempt. The job is failed if this was the last attempt or the
// error is permanent; otherwise it stays processing and the error goes back to the queue.
func (c *Service) failAttempt(ctx context.Context, job *structs.Job, m *queue.Meta, cause error, log zerolog.Logger) error {
	ctx = context.WithoutCancel(ctx)

	if c.discarded(ctx, job.ID) {
		log.Info().Err(cause).Msg("job cancelled while processing")
		return nil
	}

	permanent := errors.IsPermanent(cause)
	if !permanent && !m.Final() {
		log.Warn().Err(cause).Int("max_attempts", m.MaxRetry+1).Msg("attempt failed, will retry")
		return cause
	}

	now := timeNow()
	job.Status = structs.FAILED
	job.Error = &structs.JobError{
		Message: cause.Error(),
		Code:    errors.Code(cause),
		Details: fmt.Sprintf("attempt %d of %d", m.Attempt(), m.MaxRetry+1),
	}
	job.CompletedAt = now
	job.ActualTime = now - job.StartedAt
	job.ResultImages, job.ResultVideos = []string{}, []string{}

	ok, err := c.db.UpdateJob(ctx, job, []structs.Status{structs.PROCESSING})
	if err != nil {
		log.Error().Err(err).Msg("failed to record job failure")
		return cause
	}
	if ok {
		log.Error().Err(cause).Str("code", job.Error.Code).Bool("permanent", permanent).Msg("job failed")
	}
	return cause
}

// discarded reports whether the job has left processing (cancelled or deleted) behind our back.
func (c *Service) discarded(ctx context.Context, id string) bool {
	current, err := c.db.Job(ctx, id)
	if errors.Is(err, errors.ErrNotFound) {
		return true
	} else if err != nil {
		// can't tell; carry on & let the status guarded write decide
		return false
	}
	return current.Status != structs.PROCESSING
}

func toItems(outputs []*comfy.Output) []*media.Item {
	items := []*media.Item{}
	for _, out := range outputs {
		if out == nil {
			continue
		}
		contentType := out.ContentType
		if strings.Contains(out.Format, "/") && (contentType == "" || contentType == "application/octet-stream") {
			contentType = out.Format
		}
		items = append(items, &media.Item{
			Kind:        out.Kind,
			Filename:    out.Filename,
			ContentType: contentType,
			Data:        out.Data,
			FrameRate:   out.FrameRate,
		})
	}
	return items
}
