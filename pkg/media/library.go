package media

import (
	"context"
	"fmt"

	"github.com/voidshard/easel/pkg/errors"
	"github.com/voidshard/easel/pkg/structs"
)

// Library looks up stored images by media id.
type Library struct {
	store   Store
	records Records
}

// NewLibrary returns a Library over the given store & records.
func NewLibrary(store Store, records Records) *Library {
	return &Library{store: store, records: records}
}

// Image returns a stored image record and its bytes.
func (l *Library) Image(ctx context.Context, id string) (*structs.Media, []byte, error) {
	found, err := l.records.Media(ctx, &structs.Query{Limit: 1, MediaIDs: []string{id}})
	if err != nil {
		return nil, nil, err
	}
	if len(found) == 0 {
		return nil, nil, fmt.Errorf("%w: media %s", errors.ErrNotFound, id)
	}
	m := found[0]
	if m.Kind != structs.MediaImage {
		return nil, nil, fmt.Errorf("%w: media %s is a %s", errors.ErrInvalidArg, id, m.Kind)
	}
	data, err := l.store.Read(ctx, m.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: media %s has no data", errors.ErrNotFound, id)
	}
	return m, data, nil
}

// Exists reports whether id is a stored image.
func (l *Library) Exists(ctx context.Context, id string) (bool, error) {
	found, err := l.records.Media(ctx, &structs.Query{Limit: 1, MediaIDs: []string{id}})
	if err != nil {
		return false, err
	}
	return len(found) > 0 && found[0].Kind == structs.MediaImage, nil
}
