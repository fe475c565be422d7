package core

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/easel/pkg/errors"
	"github.com/voidshard/easel/pkg/queue"
	"github.com/voidshard/easel/pkg/structs"
)

func TestClose(t *testing.T) {
	f := newFixture(t)

	f.qu.EXPECT().Close().Return(nil)
	f.db.EXPECT().Close().Return(nil)

	err := f.svc.Close()

	assert.Nil(t, err)
}

func TestRun(t *testing.T) {
	f := newFixture(t)

	f.qu.EXPECT().Register(TaskGenerate, gomock.Any()).Return(nil)
	f.qu.EXPECT().Run().Return(nil)

	err := f.svc.Run()

	assert.Nil(t, err)
}

func TestRunRegisterFails(t *testing.T) {
	f := newFixture(t)
	failed := fmt.Errorf("nope")

	f.qu.EXPECT().Register(TaskGenerate, gomock.Any()).Return(failed)

	err := f.svc.Run()

	assert.ErrorIs(t, err, failed)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	wb := testWorkboard()
	req := &structs.SubmitRequest{
		UserID:      "user-1",
		WorkboardID: wb.ID,
		Priority:    7,
		Input: structs.JobInput{
			Prompt:          "a cat",
			ReferenceImages: []structs.ReferenceImage{{ImageID: "img-1"}},
		},
	}

	var inserted *structs.Job
	f.db.EXPECT().Workboard(ctx, wb.ID).Return(wb, nil)
	f.images.EXPECT().Exists(ctx, "img-1").Return(true, nil)
	f.db.EXPECT().InsertJob(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, j *structs.Job) error {
		inserted = j
		return nil
	})
	f.qu.EXPECT().Enqueue(TaskGenerate, gomock.Any()).DoAndReturn(func(_ string, j *structs.Job) (string, error) {
		return j.ID, nil
	})

	job, err := f.svc.Submit(ctx, req)

	assert.Nil(t, err)
	assert.Equal(t, inserted, job)
	assert.NotEqual(t, "", job.ID)
	assert.Equal(t, job.ID, job.QueueTaskID)
	assert.Equal(t, structs.PENDING, job.Status)
	assert.Equal(t, 7, job.Priority)
	assert.Equal(t, "user-1", job.UserID)
	assert.Equal(t, structs.DefaultMaxRetries, job.MaxRetries)
	assert.Equal(t, wb.Ref(), job.Workboard)
	assert.Equal(t, req.Input, job.Input)
	assert.Equal(t, []string{}, job.ResultImages)
}

func TestSubmitInvalid(t *testing.T) {
	wb := testWorkboard()
	wb.AdditionalInputFields = append(wb.AdditionalInputFields, structs.InputField{Name: "style", Type: structs.FieldString, Required: true})

	cases := []struct {
		Name      string
		Given     *structs.SubmitRequest
		Setup     func(f *fixture)
		ExpectErr error
	}{
		{
			Name:      "NoWorkboard",
			Given:     &structs.SubmitRequest{},
			ExpectErr: errors.ErrMissingField,
		},
		{
			Name:  "UnknownWorkboard",
			Given: &structs.SubmitRequest{WorkboardID: "nope"},
			Setup: func(f *fixture) {
				f.db.EXPECT().Workboard(gomock.Any(), "nope").Return(nil, fmt.Errorf("%w: workboard nope", errors.ErrNotFound))
			},
			ExpectErr: errors.ErrNotFound,
		},
		{
			Name:  "MissingRequiredField",
			Given: &structs.SubmitRequest{WorkboardID: wb.ID},
			Setup: func(f *fixture) {
				f.db.EXPECT().Workboard(gomock.Any(), wb.ID).Return(wb, nil)
			},
			ExpectErr: errors.ErrMissingField,
		},
		{
			Name: "ReferenceImageWithoutID",
			Given: &structs.SubmitRequest{WorkboardID: wb.ID, Input: structs.JobInput{
				AdditionalParams: map[string]structs.InputValue{"style": structs.Text("noir")},
				ReferenceImages:  []structs.ReferenceImage{{ImageID: " "}},
			}},
			Setup: func(f *fixture) {
				f.db.EXPECT().Workboard(gomock.Any(), wb.ID).Return(wb, nil)
			},
			ExpectErr: errors.ErrInvalidArg,
		},
		{
			Name: "UnknownReferenceImage",
			Given: &structs.SubmitRequest{WorkboardID: wb.ID, Input: structs.JobInput{
				AdditionalParams: map[string]structs.InputValue{"style": structs.Text("noir")},
				ReferenceImages:  []structs.ReferenceImage{{ImageID: "gone"}},
			}},
			Setup: func(f *fixture) {
				f.db.EXPECT().Workboard(gomock.Any(), wb.ID).Return(wb, nil)
				f.images.EXPECT().Exists(gomock.Any(), "gone").Return(false, nil)
			},
			ExpectErr: errors.ErrInvalidArg,
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			f := newFixture(t)
			if c.Setup != nil {
				c.Setup(f)
			}

			job, err := f.svc.Submit(context.Background(), c.Given)

			assert.Nil(t, job)
			assert.ErrorIs(t, err, c.ExpectErr)
		})
	}
}

func TestSubmitRequiredFieldAtTopLevel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	wb := testWorkboard()
	wb.AdditionalInputFields = append(wb.AdditionalInputFields, structs.InputField{Name: "style", Type: structs.FieldString, Required: true})

	req := &structs.SubmitRequest{}
	body := fmt.Sprintf(`{"workboardId": %q, "inputData": {"prompt": "a cat", "style": "noir"}}`, wb.ID)
	assert.Nil(t, json.Unmarshal([]byte(body), req))

	f.db.EXPECT().Workboard(ctx, wb.ID).Return(wb, nil)
	f.db.EXPECT().InsertJob(ctx, gomock.Any()).Return(nil)
	f.qu.EXPECT().Enqueue(TaskGenerate, gomock.Any()).DoAndReturn(func(_ string, j *structs.Job) (string, error) {
		return j.ID, nil
	})

	job, err := f.svc.Submit(ctx, req)

	assert.Nil(t, err)
	v, ok := job.Input.Param("style")
	assert.True(t, ok)
	assert.Equal(t, "noir", v.Literal())
}

func TestSubmitEnqueueFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	wb := testWorkboard()
	failed := fmt.Errorf("redis down")

	var updated *structs.Job
	f.db.EXPECT().Workboard(ctx, wb.ID).Return(wb, nil)
	f.db.EXPECT().InsertJob(ctx, gomock.Any()).Return(nil)
	f.qu.EXPECT().Enqueue(TaskGenerate, gomock.Any()).Return("", failed)
	f.db.EXPECT().UpdateJob(ctx, gomock.Any(), []structs.Status{structs.PENDING}).DoAndReturn(func(_ context.Context, j *structs.Job, _ []structs.Status) (bool, error) {
		updated = j
		return true, nil
	})

	job, err := f.svc.Submit(ctx, &structs.SubmitRequest{WorkboardID: wb.ID})

	assert.Nil(t, job)
	assert.ErrorIs(t, err, failed)
	assert.Equal(t, structs.FAILED, updated.Status)
	assert.Equal(t, errors.CodeInternal, updated.Error.Code)
}

func TestJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	job := testJob(structs.COMPLETED)
	found := []*structs.Media{{ID: "m1", JobID: job.ID}}

	f.db.EXPECT().Job(ctx, job.ID).Return(job, nil)
	f.db.EXPECT().Media(ctx, &structs.Query{JobIDs: []string{job.ID}}).Return(found, nil)

	view, err := f.svc.Job(ctx, job.ID)

	assert.Nil(t, err)
	assert.Equal(t, job, view.Job)
	assert.Equal(t, found, view.Media)
}

func TestJobs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.db.EXPECT().Jobs(ctx, &structs.Query{Limit: 100, Statuses: []structs.Status{structs.FAILED}}).Return([]*structs.Job{}, nil)

	result, err := f.svc.Jobs(ctx, &structs.Query{Statuses: []structs.Status{structs.FAILED}})

	assert.Nil(t, err)
	assert.Equal(t, []*structs.Job{}, result)
}

func TestCancel(t *testing.T) {
	cases := []struct {
		Name            string
		Status          structs.Status
		ExpectErr       error
		ExpectInterrupt bool
	}{
		{Name: "Pending", Status: structs.PENDING},
		{Name: "Processing", Status: structs.PROCESSING, ExpectInterrupt: true},
		{Name: "Completed", Status: structs.COMPLETED, ExpectErr: errors.ErrInvalidState},
		{Name: "Failed", Status: structs.FAILED, ExpectErr: errors.ErrInvalidState},
		{Name: "Cancelled", Status: structs.CANCELLED, ExpectErr: errors.ErrInvalidState},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			f := newFixture(t)
			rec := newJobRecord(testJob(c.Status))
			rec.expect(f.db)

			if c.ExpectErr == nil {
				f.qu.EXPECT().Kill(gomock.Any()).Return(nil)
			}
			if c.ExpectInterrupt {
				f.compute.EXPECT().Interrupt(gomock.Any(), testServer).Return(fmt.Errorf("ignored"))
			}

			err := f.svc.Cancel(context.Background(), "job-1")

			if c.ExpectErr != nil {
				assert.ErrorIs(t, err, c.ExpectErr)
				assert.Equal(t, c.Status, rec.current().Status)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, structs.CANCELLED, rec.current().Status)
			assert.Equal(t, int64(1000000), rec.current().CompletedAt)
		})
	}
}

func TestCancelLosesRace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.db.EXPECT().Job(ctx, "job-1").Return(testJob(structs.PROCESSING), nil)
	f.db.EXPECT().SetJobStatus(ctx, "job-1", structs.CANCELLED, int64(1000000), activeStates).Return(false, nil)

	err := f.svc.Cancel(ctx, "job-1")

	assert.ErrorIs(t, err, errors.ErrInvalidState)
}

func TestCancelKeepsWorkerWrites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	stale := testJob(structs.PROCESSING)
	stale.StartedAt = 400000
	rec := newJobRecord(stale)

	// a worker writes the resolved seed & progress after Cancel has read the job
	f.db.EXPECT().Job(ctx, "job-1").DoAndReturn(func(_ context.Context, _ string) (*structs.Job, error) {
		out := rec.current()
		rec.lock.Lock()
		rec.job.Input.Seed = structs.Uint(7)
		rec.job.Progress = 55
		rec.lock.Unlock()
		return out, nil
	})
	rec.expect(f.db)
	f.qu.EXPECT().Kill(gomock.Any()).Return(nil)
	f.compute.EXPECT().Interrupt(gomock.Any(), testServer).Return(nil)

	err := f.svc.Cancel(ctx, "job-1")

	assert.Nil(t, err)
	job := rec.current()
	assert.Equal(t, structs.CANCELLED, job.Status)
	assert.Equal(t, "7", job.Input.Seed.Literal())
	assert.Equal(t, 55, job.Progress)
	assert.Equal(t, int64(1000000), job.CompletedAt)
	assert.Equal(t, int64(600000), job.ActualTime)
}

func TestRetry(t *testing.T) {
	cases := []struct {
		Name       string
		Status     structs.Status
		RetryCount int
		ExpectErr  error
	}{
		{Name: "Failed", Status: structs.FAILED},
		{Name: "FailedLastRetry", Status: structs.FAILED, RetryCount: 2},
		{Name: "FailedExhausted", Status: structs.FAILED, RetryCount: 3, ExpectErr: errors.ErrMaxRetries},
		{Name: "Pending", Status: structs.PENDING, ExpectErr: errors.ErrInvalidState},
		{Name: "Processing", Status: structs.PROCESSING, ExpectErr: errors.ErrInvalidState},
		{Name: "Completed", Status: structs.COMPLETED, ExpectErr: errors.ErrInvalidState},
		{Name: "Cancelled", Status: structs.CANCELLED, ExpectErr: errors.ErrInvalidState},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			f := newFixture(t)
			parent := testJob(c.Status)
			parent.RetryCount = c.RetryCount
			parent.Input.Seed = structs.Uint(7)
			rec := newJobRecord(parent)
			rec.expect(f.db)

			var inserted *structs.Job
			if c.ExpectErr == nil {
				f.db.EXPECT().InsertJob(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, j *structs.Job) error {
					inserted = j
					return nil
				})
				f.qu.EXPECT().Enqueue(TaskGenerate, gomock.Any()).DoAndReturn(func(_ string, j *structs.Job) (string, error) {
					return j.ID, nil
				})
			}

			child, err := f.svc.Retry(context.Background(), parent.ID)

			if c.ExpectErr != nil {
				assert.ErrorIs(t, err, c.ExpectErr)
				assert.Nil(t, child)
				assert.Equal(t, c.RetryCount, rec.current().RetryCount)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, inserted, child)
			assert.NotEqual(t, parent.ID, child.ID)
			assert.Equal(t, parent.ID, child.ParentID)
			assert.Equal(t, structs.PENDING, child.Status)
			assert.Equal(t, parent.Input, child.Input)
			assert.Equal(t, parent.Workboard, child.Workboard)
			assert.Equal(t, c.RetryCount+1, child.RetryCount)

			// the failed job is kept, only its counter moves
			assert.Equal(t, structs.FAILED, rec.current().Status)
			assert.Equal(t, c.RetryCount+1, rec.current().RetryCount)
		})
	}
}

func TestDelete(t *testing.T) {
	cases := []struct {
		Name       string
		Status     structs.Status
		Deleted    bool
		ExpectKill bool
		ExpectErr  error
	}{
		{Name: "Pending", Status: structs.PENDING, Deleted: true, ExpectKill: true},
		{Name: "Completed", Status: structs.COMPLETED, Deleted: true},
		{Name: "Processing", Status: structs.PROCESSING, ExpectErr: errors.ErrInvalidState},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			job := testJob(c.Status)

			f.db.EXPECT().Job(ctx, job.ID).Return(job, nil)
			f.db.EXPECT().DeleteJob(ctx, job.ID, deletableStates).Return(c.Deleted, nil)
			if c.ExpectKill {
				f.qu.EXPECT().Kill(job).Return(nil)
			}

			err := f.svc.Delete(ctx, job.ID)

			if c.ExpectErr != nil {
				assert.ErrorIs(t, err, c.ExpectErr)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestCreateWorkboard(t *testing.T) {
	valid := testWorkboard().WorkboardSpec

	broken := valid
	broken.WorkflowTemplate = `{"3": {"inputs": {"seed": 1}`

	unnamed := valid
	unnamed.Name = " "

	serverless := valid
	serverless.ServerAddress = ""

	cases := []struct {
		Name      string
		Given     *structs.WorkboardSpec
		ExpectErr error
	}{
		{Name: "Valid", Given: &valid},
		{Name: "BrokenTemplate", Given: &broken, ExpectErr: errors.ErrInvalidFormat},
		{Name: "NoName", Given: &unnamed, ExpectErr: errors.ErrMissingField},
		{Name: "NoServer", Given: &serverless, ExpectErr: errors.ErrMissingField},
		{Name: "Nil", ExpectErr: errors.ErrMissingField},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			if c.ExpectErr == nil {
				f.db.EXPECT().InsertWorkboard(ctx, gomock.Any()).Return(nil)
			}

			wb, err := f.svc.CreateWorkboard(ctx, c.Given)

			if c.ExpectErr != nil {
				assert.ErrorIs(t, err, c.ExpectErr)
				return
			}
			assert.Nil(t, err)
			assert.NotEqual(t, "", wb.ID)
			assert.Equal(t, *c.Given, wb.WorkboardSpec)
		})
	}
}

func TestProcessJobRegistered(t *testing.T) {
	f := newFixture(t)

	var handler queue.Handler
	f.qu.EXPECT().Register(TaskGenerate, gomock.Any()).DoAndReturn(func(_ string, h queue.Handler) error {
		handler = h
		return nil
	})
	f.qu.EXPECT().Run().Return(nil)
	f.db.EXPECT().Job(gomock.Any(), "gone").Return(nil, errors.ErrNotFound)

	assert.Nil(t, f.svc.Run())
	assert.Nil(t, handler(context.Background(), &queue.Meta{JobID: "gone"}))
}
