package media

import (
	"path"
	"strings"

	"github.com/voidshard/easel/pkg/structs"
)

const (
	defaultImageExt = "png"
	defaultVideoExt = "mp4"
)

var extByType = map[string]string{
	"image/png":       "png",
	"image/jpeg":      "jpg",
	"image/jpg":       "jpg",
	"image/gif":       "gif",
	"image/webp":      "webp",
	"image/bmp":       "bmp",
	"image/tiff":      "tiff",
	"video/mp4":       "mp4",
	"video/h264-mp4":  "mp4",
	"video/h265-mp4":  "mp4",
	"video/webm":      "webm",
	"video/quicktime": "mov",
	"video/x-msvideo": "avi",
}

var typeByExt = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"mov":  "video/quicktime",
	"avi":  "video/x-msvideo",
}

// Extension returns the file extension (without dot) for a MIME type, falling back to the
// default for the kind when the type is unknown.
func Extension(mimeType string, kind structs.MediaKind) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if ext, ok := extByType[mimeType]; ok {
		return ext
	}
	if kind == structs.MediaVideo {
		return defaultVideoExt
	}
	return defaultImageExt
}

// ContentType picks the most specific MIME type from what the server declared and the
// filename it reported.
func ContentType(declared, filename string, kind structs.MediaKind) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if _, ok := extByType[declared]; ok {
		return declared
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if t, ok := typeByExt[ext]; ok {
		return t
	}
	if strings.HasPrefix(declared, "image/") || strings.HasPrefix(declared, "video/") {
		return declared
	}
	return typeByExt[Extension("", kind)]
}
