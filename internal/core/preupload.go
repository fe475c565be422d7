package core

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/voidshard/easel/pkg/render"
	"github.com/voidshard/easel/pkg/structs"
)

// preupload sends every image a job references to the job's compute server, returning the
// server side filename for each image field.
//
// Images that can't be found are logged & skipped, their field renders empty. Failing to
// upload an image we do have is an attempt failure: the same server runs the workflow.
func (c *Service) preupload(ctx context.Context, job *structs.Job, log zerolog.Logger) (map[string]string, error) {
	wanted := imageRefs(job)
	uploads := map[string]string{}
	if len(wanted) == 0 {
		return uploads, nil
	}

	fields := make([]string, 0, len(wanted))
	for field := range wanted {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		id := wanted[field]
		m, data, err := c.images.Image(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("field", field).Str("image_id", id).Msg("skipping image, unable to load")
			continue
		}

		name, err := c.compute.Upload(ctx, job.Workboard.ServerAddress, uploadName(job.ID, field, m), data)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("field", field).Str("image_id", id).Str("uploaded", name).Msg("image uploaded")
		uploads[field] = name
	}
	return uploads, nil
}

// imageRefs maps image field name -> stored image id for every image the job's input uses.
func imageRefs(job *structs.Job) map[string]string {
	out := map[string]string{}
	for _, f := range job.Workboard.AdditionalInputFields {
		if !f.Type.IsImage() {
			continue
		}
		v, ok := job.Input.Param(f.Name)
		if !ok {
			v = f.DefaultValue
		}
		// single image fields use the first of a list
		id := strings.TrimSpace(v.Literal())
		if id != "" {
			out[f.Name] = id
		}
	}
	if len(job.Input.ReferenceImages) > 0 && strings.Contains(job.Workboard.WorkflowTemplate, render.TokenReferenceImage) {
		if id := strings.TrimSpace(job.Input.ReferenceImages[0].ImageID); id != "" {
			out[render.ReferenceImageField] = id
		}
	}
	return out
}

var (
	unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	unsafeExt  = regexp.MustCompile(`[^a-z0-9]`)
)

// uploadName is unique per job & field so concurrent jobs on one server don't collide.
// Everything but [A-Za-z0-9_-] is replaced, field names are user defined.
func uploadName(jobID, field string, m *structs.Media) string {
	ext := unsafeExt.ReplaceAllString(strings.ToLower(strings.TrimPrefix(path.Ext(m.Filename), ".")), "")
	if ext == "" {
		ext = "png"
	}
	return fmt.Sprintf(
		"easel_%s_%s.%s",
		unsafeName.ReplaceAllString(jobID, "_"),
		unsafeName.ReplaceAllString(field, "_"),
		ext,
	)
}
