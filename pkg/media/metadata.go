package media

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/voidshard/easel/pkg/structs"
)

// Inspect reads image dimensions & format from the encoded bytes without decoding pixels.
func Inspect(data []byte) (structs.MediaMetadata, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return structs.MediaMetadata{}, err
	}
	return structs.MediaMetadata{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
