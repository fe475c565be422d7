package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/easel/pkg/errors"
	"github.com/voidshard/easel/pkg/structs"
)

func TestImageRefs(t *testing.T) {
	cases := []struct {
		Name     string
		Fields   []structs.InputField
		Template string
		Input    structs.JobInput
		Expect   map[string]string
	}{
		{
			Name:   "NothingSet",
			Fields: []structs.InputField{{Name: "pose", Type: structs.FieldImage}},
			Expect: map[string]string{},
		},
		{
			Name: "FromParams",
			Fields: []structs.InputField{
				{Name: "pose", Type: structs.FieldImage},
				{Name: "steps", Type: structs.FieldNumber},
			},
			Input: structs.JobInput{AdditionalParams: map[string]structs.InputValue{
				"pose":  structs.Text("img-1"),
				"steps": structs.Number(3),
			}},
			Expect: map[string]string{"pose": "img-1"},
		},
		{
			Name:   "FromDefault",
			Fields: []structs.InputField{{Name: "mask", Type: structs.FieldImage, DefaultValue: structs.Text("img-2")}},
			Expect: map[string]string{"mask": "img-2"},
		},
		{
			Name:   "FirstOfList",
			Fields: []structs.InputField{{Name: "pose", Type: structs.FieldImage}},
			Input: structs.JobInput{Extra: map[string]structs.InputValue{
				"pose": structs.List(structs.Text("img-3"), structs.Text("img-4")),
			}},
			Expect: map[string]string{"pose": "img-3"},
		},
		{
			Name:     "ReferenceImageUsed",
			Template: `{"1": {"inputs": {"image": "{{##reference_image##}}"}}}`,
			Input:    structs.JobInput{ReferenceImages: []structs.ReferenceImage{{ImageID: "ref-1"}, {ImageID: "ref-2"}}},
			Expect:   map[string]string{"reference_image": "ref-1"},
		},
		{
			Name:     "ReferenceImageUnused",
			Template: `{"1": {"inputs": {"image": "fixed.png"}}}`,
			Input:    structs.JobInput{ReferenceImages: []structs.ReferenceImage{{ImageID: "ref-1"}}},
			Expect:   map[string]string{},
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			job := &structs.Job{ID: "job-1", Input: c.Input}
			job.Workboard.AdditionalInputFields = c.Fields
			job.Workboard.WorkflowTemplate = c.Template

			assert.Equal(t, c.Expect, imageRefs(job))
		})
	}
}

func TestPreupload(t *testing.T) {
	f := newFixture(t)
	job := testJob(structs.PROCESSING)
	job.Workboard.AdditionalInputFields = append(job.Workboard.AdditionalInputFields, structs.InputField{Name: "mask", Type: structs.FieldImage})
	job.Input.AdditionalParams = map[string]structs.InputValue{
		"pose": structs.Text("img-pose"),
		"mask": structs.Text("img-gone"),
	}

	f.images.EXPECT().Image(gomock.Any(), "img-gone").Return(nil, nil, fmt.Errorf("%w: img-gone", errors.ErrNotFound))
	f.images.EXPECT().Image(gomock.Any(), "img-pose").Return(&structs.Media{ID: "img-pose", Filename: "Pose.JPG"}, []byte("jpg"), nil)
	f.compute.EXPECT().Upload(gomock.Any(), testServer, "easel_job-1_pose.jpg", []byte("jpg")).Return("easel_job-1_pose.jpg", nil)

	uploads, err := f.svc.preupload(context.Background(), job, zerolog.Nop())

	assert.Nil(t, err)
	assert.Equal(t, map[string]string{"pose": "easel_job-1_pose.jpg"}, uploads)
}

func TestUploadName(t *testing.T) {
	cases := []struct {
		Name     string
		Field    string
		Filename string
		Expect   string
	}{
		{"Plain", "pose", "a.png", "easel_job-1_pose.png"},
		{"UpperExt", "pose", "A.JPG", "easel_job-1_pose.jpg"},
		{"NoExt", "pose", "a", "easel_job-1_pose.png"},
		{"PathInField", "../../etc/passwd", "a.png", "easel_job-1_______etc_passwd.png"},
		{"SpacesInField", "my pose", "a.webp", "easel_job-1_my_pose.webp"},
		{"OddExt", "pose", "a.p?n/g", "easel_job-1_pose.png"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, uploadName("job-1", c.Field, &structs.Media{Filename: c.Filename}))
		})
	}
}

func TestPreuploadFails(t *testing.T) {
	f := newFixture(t)
	job := testJob(structs.PROCESSING)
	job.Input.AdditionalParams = map[string]structs.InputValue{"pose": structs.Text("img-pose")}

	f.images.EXPECT().Image(gomock.Any(), "img-pose").Return(&structs.Media{ID: "img-pose", Filename: "pose"}, []byte("png"), nil)
	f.compute.EXPECT().Upload(gomock.Any(), testServer, "easel_job-1_pose.png", gomock.Any()).Return("", fmt.Errorf("%w: 500", errors.ErrUpload))

	uploads, err := f.svc.preupload(context.Background(), job, zerolog.Nop())

	assert.Nil(t, uploads)
	assert.ErrorIs(t, err, errors.ErrUpload)
	assert.False(t, errors.IsPermanent(err))
}

func TestProgressSet(t *testing.T) {
	f := newFixture(t)
	written := []int{}
	f.db.EXPECT().SetJobProgress(gomock.Any(), "job-1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, p int) error {
		written = append(written, p)
		return nil
	}).AnyTimes()

	p := newProgress(context.Background(), f.db, "job-1", zerolog.Nop())
	p.set(10)
	p.set(10)
	p.set(5)
	p.written(30)
	p.set(25)
	p.remote(5, 10)
	p.set(150)

	assert.Equal(t, []int{10, 55, 100}, written)
}
