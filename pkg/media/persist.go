// Package media stores what jobs produce and serves stored images back as job inputs.
package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/voidshard/easel/internal/utils"
	"github.com/voidshard/easel/pkg/structs"
)

// Records is where media records are kept.
type Records interface {
	InsertMedia(ctx context.Context, m *structs.Media) error
	DeleteMedia(ctx context.Context, id string) error
	Media(ctx context.Context, q *structs.Query) ([]*structs.Media, error)
}

// Item is a single produced file waiting to be persisted.
type Item struct {
	Kind        structs.MediaKind
	Filename    string
	ContentType string
	Data        []byte

	// Width, Height & FrameRate as reported by the producer, if known.
	Width     int
	Height    int
	FrameRate float64
}

// Persister writes produced media to a Store and records it.
type Persister struct {
	store   Store
	records Records
	baseURL string
	log     zerolog.Logger
}

// timeNow returns the current time in unix milliseconds
var timeNow = func() int64 {
	return time.Now().UnixMilli()
}

// NewPersister returns a Persister. Media URLs are baseURL joined with the storage key.
func NewPersister(store Store, records Records, baseURL string, log zerolog.Logger) *Persister {
	return &Persister{store: store, records: records, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// Persist stores each item for the job. A failing item is logged and skipped; the media that
// was persisted is returned in the order given.
func (p *Persister) Persist(ctx context.Context, job *structs.Job, params structs.GenerationParams, items []*Item) []*structs.Media {
	out := []*structs.Media{}
	for i, item := range items {
		m, err := p.persist(ctx, job, params, item)
		if err != nil {
			p.log.Warn().Err(err).Str("job_id", job.ID).Int("item", i).Str("filename", item.Filename).Msg("failed to persist media, skipping")
			continue
		}
		out = append(out, m)
	}
	return out
}

func (p *Persister) persist(ctx context.Context, job *structs.Job, params structs.GenerationParams, item *Item) (*structs.Media, error) {
	if len(item.Data) == 0 {
		return nil, fmt.Errorf("media %s is empty", item.Filename)
	}
	kind := item.Kind
	if kind == "" {
		kind = structs.MediaImage
	}

	contentType := ContentType(item.ContentType, item.Filename, kind)
	ext := Extension(contentType, kind)

	meta := structs.MediaMetadata{
		Width:     item.Width,
		Height:    item.Height,
		Format:    ext,
		FrameRate: item.FrameRate,
	}
	if kind == structs.MediaImage {
		found, err := Inspect(item.Data)
		if err == nil {
			meta.Width, meta.Height, meta.Format = found.Width, found.Height, found.Format
		} else {
			p.log.Debug().Err(err).Str("job_id", job.ID).Str("filename", item.Filename).Msg("unable to read image metadata")
		}
	}

	id := utils.NewRandomID()
	key, err := p.store.Write(ctx, storageKey(kind, job.ID, id, ext), item.Data)
	if err != nil {
		return nil, err
	}

	filename := item.Filename
	if filename == "" {
		filename = id + "." + ext
	}

	m := &structs.Media{
		ID:         id,
		JobID:      job.ID,
		UserID:     job.UserID,
		Kind:       kind,
		Filename:   path.Base(filename),
		MimeType:   contentType,
		Size:       int64(len(item.Data)),
		StorageKey: key,
		URL:        p.url(key),
		Metadata:   meta,
		Parameters: params,
		CreatedAt:  timeNow(),
	}
	if err := p.records.InsertMedia(ctx, m); err != nil {
		if derr := p.store.Delete(ctx, key); derr != nil {
			p.log.Warn().Err(derr).Str("key", key).Msg("failed to remove orphaned media file")
		}
		return nil, err
	}
	return m, nil
}

// Remove deletes media records & their bytes. Errors are logged; the first is returned.
func (p *Persister) Remove(ctx context.Context, in []*structs.Media) error {
	var first error
	for _, m := range in {
		err := p.records.DeleteMedia(ctx, m.ID)
		if err == nil {
			err = p.store.Delete(ctx, m.StorageKey)
		}
		if err != nil {
			p.log.Warn().Err(err).Str("media_id", m.ID).Msg("failed to remove media")
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func (p *Persister) url(key string) string {
	if p.baseURL == "" {
		return "/" + key
	}
	return p.baseURL + "/" + key
}

// storageKey namespaces media by kind and job, eg. images/<job>/<media>.png
func storageKey(kind structs.MediaKind, jobID, mediaID, ext string) string {
	ns := "images"
	if kind == structs.MediaVideo {
		ns = "videos"
	}
	return fmt.Sprintf("%s/%s/%s.%s", ns, jobID, mediaID, ext)
}
