package core

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/easel/internal/mocks/core/core_mock"
	"github.com/voidshard/easel/internal/mocks/pkg/database_mock"
	"github.com/voidshard/easel/internal/mocks/pkg/queue_mock"
	"github.com/voidshard/easel/pkg/media"
	"github.com/voidshard/easel/pkg/render"
	"github.com/voidshard/easel/pkg/seed"
	"github.com/voidshard/easel/pkg/structs"
)

const testServer = "http://gpu-01:8188"

func init() {
	timeNow = func() int64 { return 1000000 }
}

type fixture struct {
	db      *database_mock.MockDatabase
	qu      *queue_mock.MockQueue
	compute *core_mock.MockCompute
	images  *core_mock.MockImageSource
	store   *media.FileStore
	svc     *Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		db:      database_mock.NewMockDatabase(ctrl),
		qu:      queue_mock.NewMockQueue(ctrl),
		compute: core_mock.NewMockCompute(ctrl),
		images:  core_mock.NewMockImageSource(ctrl),
	}

	store, err := media.NewFileStore(t.TempDir())
	assert.Nil(t, err)
	f.store = store

	svc, err := NewService(f.db, f.qu, f.compute, f.images, media.NewPersister(store, f.db, "http://media.local", zerolog.Nop()), nil)
	assert.Nil(t, err)
	svc.renderer = render.New(seed.NewWithSource(rand.NewPCG(1, 2)))
	f.svc = svc

	return f
}

// jobRecord plays the part of a stored job, honouring status guarded writes.
type jobRecord struct {
	lock     sync.Mutex
	job      *structs.Job
	updates  []*structs.Job
	progress []int
}

func newJobRecord(job *structs.Job) *jobRecord {
	return &jobRecord{job: copyJob(job)}
}

func (r *jobRecord) expect(db *database_mock.MockDatabase) {
	db.EXPECT().Job(gomock.Any(), r.job.ID).DoAndReturn(func(_ context.Context, _ string) (*structs.Job, error) {
		r.lock.Lock()
		defer r.lock.Unlock()
		return copyJob(r.job), nil
	}).AnyTimes()

	db.EXPECT().UpdateJob(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, j *structs.Job, expect []structs.Status) (bool, error) {
		r.lock.Lock()
		defer r.lock.Unlock()
		if len(expect) > 0 && !hasStatus(expect, r.job.Status) {
			return false, nil
		}
		r.job = copyJob(j)
		r.updates = append(r.updates, copyJob(j))
		return true, nil
	}).AnyTimes()

	db.EXPECT().SetJobStatus(gomock.Any(), r.job.ID, gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, st structs.Status, at int64, expect []structs.Status) (bool, error) {
		r.lock.Lock()
		defer r.lock.Unlock()
		if len(expect) > 0 && !hasStatus(expect, r.job.Status) {
			return false, nil
		}
		r.job.Status = st
		r.job.UpdatedAt = at
		r.job.CompletedAt = at
		if r.job.StartedAt > 0 {
			r.job.ActualTime = at - r.job.StartedAt
		}
		r.updates = append(r.updates, copyJob(r.job))
		return true, nil
	}).AnyTimes()

	db.EXPECT().SetJobProgress(gomock.Any(), r.job.ID, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, p int) error {
		r.lock.Lock()
		defer r.lock.Unlock()
		if r.job.Status == structs.PROCESSING {
			r.job.Progress = p
		}
		r.progress = append(r.progress, p)
		return nil
	}).AnyTimes()
}

func (r *jobRecord) setStatus(st structs.Status) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.job.Status = st
}

func (r *jobRecord) current() *structs.Job {
	r.lock.Lock()
	defer r.lock.Unlock()
	return copyJob(r.job)
}

func (r *jobRecord) statuses() []structs.Status {
	r.lock.Lock()
	defer r.lock.Unlock()
	out := []structs.Status{}
	for _, u := range r.updates {
		out = append(out, u.Status)
	}
	return out
}

func copyJob(in *structs.Job) *structs.Job {
	out := *in
	return &out
}

func hasStatus(in []structs.Status, st structs.Status) bool {
	for _, s := range in {
		if s == st {
			return true
		}
	}
	return false
}

func pngBytes(t *testing.T, w, h int) []byte {
	buf := bytes.NewBuffer(nil)
	assert.Nil(t, png.Encode(buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func testWorkboard() *structs.Workboard {
	return &structs.Workboard{
		ID: "wb",
		WorkboardSpec: structs.WorkboardSpec{
			Name: "portrait",
			BaseInputFields: structs.BaseInputFields{
				Models: []structs.Option{{Key: "SDXL", Value: "sdxl.safetensors"}},
				Sizes:  []structs.Option{{Key: "Square", Value: "1024x1024"}},
			},
			AdditionalInputFields: []structs.InputField{
				{Name: "steps", Type: structs.FieldNumber, DefaultValue: structs.Number(20)},
				{Name: "pose", Type: structs.FieldImage},
			},
			WorkflowTemplate: `{"3": {"class_type": "KSampler", "inputs": {"seed": 999, "steps": "{{##steps##}}"}},` +
				` "6": {"class_type": "CLIPTextEncode", "inputs": {"text": "{{##prompt##}}"}},` +
				` "9": {"class_type": "LoadImage", "inputs": {"image": "{{##pose##}}"}}}`,
			ServerAddress: testServer,
		},
	}
}

func testJob(status structs.Status) *structs.Job {
	wb := testWorkboard()
	return &structs.Job{
		ID:           "job-1",
		UserID:       "user-1",
		Status:       status,
		Priority:     3,
		Input:        structs.JobInput{Prompt: "a cat", Seed: structs.Number(-7)},
		Workboard:    wb.Ref(),
		ResultImages: []string{},
		ResultVideos: []string{},
		MaxRetries:   3,
		QueueTaskID:  "job-1",
		CreatedAt:    500,
	}
}
