package core

import (
	"context"

	"github.com/voidshard/easel/pkg/comfy"
	"github.com/voidshard/easel/pkg/structs"
)

// Compute runs rendered workflows on a remote compute server.
type Compute interface {
	Execute(ctx context.Context, server string, doc []byte, progress comfy.ProgressFunc) (*comfy.Result, error)
	Upload(ctx context.Context, server, filename string, data []byte) (string, error)
	Interrupt(ctx context.Context, server string) error
}

// ImageSource returns previously stored images, used as job inputs.
type ImageSource interface {
	Image(ctx context.Context, id string) (*structs.Media, []byte, error)
	Exists(ctx context.Context, id string) (bool, error)
}
