package client

import (
	"context"
	"fmt"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/easel/internal/mocks/pkg/api_mock"
	"github.com/voidshard/easel/internal/utils"
	"github.com/voidshard/easel/pkg/api/http/server"
	"github.com/voidshard/easel/pkg/errors"
	"github.com/voidshard/easel/pkg/structs"
)

func newTestClient(t *testing.T) (*Client, *api_mock.MockAPI) {
	svc := api_mock.NewMockAPI(gomock.NewController(t))
	ts := httptest.NewServer(server.NewServer("", "", "", "", false, zerolog.Nop()).Router(svc))
	t.Cleanup(ts.Close)

	c, err := New(ts.URL)
	assert.Nil(t, err)
	return c, svc
}

func TestClientJobs(t *testing.T) {
	ctx := context.Background()
	c, svc := newTestClient(t)
	id := utils.NewID(1)
	wb := utils.NewID(2)

	svc.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req *structs.SubmitRequest) (*structs.Job, error) {
		assert.Equal(t, wb, req.WorkboardID)
		assert.Equal(t, "a cat", req.Input.Prompt)
		return &structs.Job{ID: id, Status: structs.PENDING, Workboard: structs.WorkboardRef{ID: wb}}, nil
	})
	job, err := c.Submit(ctx, &structs.SubmitRequest{WorkboardID: wb, Input: structs.JobInput{Prompt: "a cat"}})
	assert.Nil(t, err)
	assert.Equal(t, id, job.ID)
	assert.Equal(t, structs.PENDING, job.Status)

	svc.EXPECT().Job(gomock.Any(), id).Return(&structs.JobView{Job: &structs.Job{ID: id}, Media: []*structs.Media{{ID: "m"}}}, nil)
	view, err := c.Job(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, id, view.ID)
	assert.Equal(t, "m", view.Media[0].ID)

	svc.EXPECT().Jobs(gomock.Any(), &structs.Query{Limit: 10, Statuses: []structs.Status{structs.FAILED}, UserIDs: []string{"bob"}}).Return([]*structs.Job{{ID: id}}, nil)
	jobs, err := c.Jobs(ctx, &structs.Query{Limit: 10, Statuses: []structs.Status{structs.FAILED}, UserIDs: []string{"bob"}})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(jobs))

	svc.EXPECT().Cancel(gomock.Any(), id).Return(nil)
	assert.Nil(t, c.Cancel(ctx, id))

	svc.EXPECT().Retry(gomock.Any(), id).Return(&structs.Job{ID: "child", ParentID: id}, nil)
	child, err := c.Retry(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, id, child.ParentID)

	svc.EXPECT().Delete(gomock.Any(), id).Return(nil)
	assert.Nil(t, c.Delete(ctx, id))
}

func TestClientWorkboardsAndMedia(t *testing.T) {
	ctx := context.Background()
	c, svc := newTestClient(t)
	id := utils.NewID(3)

	spec := &structs.WorkboardSpec{Name: "wb", WorkflowTemplate: `{"1": {}}`, ServerAddress: "http://gpu:8188"}
	svc.EXPECT().CreateWorkboard(gomock.Any(), spec).Return(&structs.Workboard{ID: id, WorkboardSpec: *spec}, nil)
	wb, err := c.CreateWorkboard(ctx, spec)
	assert.Nil(t, err)
	assert.Equal(t, id, wb.ID)
	assert.Equal(t, *spec, wb.WorkboardSpec)

	svc.EXPECT().Workboard(gomock.Any(), id).Return(&structs.Workboard{ID: id}, nil)
	wb, err = c.Workboard(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, id, wb.ID)

	svc.EXPECT().Workboards(gomock.Any(), &structs.Query{Limit: 100}).Return([]*structs.Workboard{{ID: id}}, nil)
	wbs, err := c.Workboards(ctx, nil)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(wbs))

	svc.EXPECT().Media(gomock.Any(), &structs.Query{Limit: 100, JobIDs: []string{id}}).Return([]*structs.Media{{ID: "m", Kind: structs.MediaImage}}, nil)
	found, err := c.Media(ctx, &structs.Query{JobIDs: []string{id}})
	assert.Nil(t, err)
	assert.Equal(t, structs.MediaImage, found[0].Kind)
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()
	cl, svc := newTestClient(t)
	id := utils.NewID(4)

	cases := []struct {
		Name   string
		Given  error
		Expect error
	}{
		{"NotFound", fmt.Errorf("%w: job", errors.ErrNotFound), errors.ErrNotFound},
		{"InvalidState", fmt.Errorf("%w: job is completed", errors.ErrInvalidState), errors.ErrInvalidState},
		{"MaxRetries", errors.ErrMaxRetries, errors.ErrInvalidState},
		{"Validation", fmt.Errorf("%w: prompt", errors.ErrMissingField), errors.ErrInvalidArg},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			svc.EXPECT().Cancel(gomock.Any(), id).Return(c.Given)

			err := cl.Cancel(ctx, id)

			assert.ErrorIs(t, err, c.Expect)
			assert.Contains(t, err.Error(), c.Given.Error())
		})
	}
}

func TestAddr(t *testing.T) {
	base, _ := url.Parse("https://easel.local:8100/prefix/")
	c := &Client{url: base}

	assert.Equal(t, "https://easel.local:8100/prefix/api/v1/jobs/abc/retry", c.addr("/api/v1/jobs/{id}/retry", "abc").String())
	assert.Equal(t, "https://easel.local:8100/prefix/api/v1/media", c.addr("/api/v1/media", "").String())
}

func TestSetQueryString(t *testing.T) {
	u := &url.URL{Path: "/api/v1/jobs"}
	setQueryString(u, &structs.Query{Limit: 5, Offset: 10, JobIDs: []string{"a", "b"}, Statuses: []structs.Status{structs.PENDING}})

	q := u.Query()
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, "10", q.Get("offset"))
	assert.Equal(t, []string{"a", "b"}, q["job_ids"])
	assert.Equal(t, []string{"pending"}, q["statuses"])
}
