package comfy

import (
	"encoding/json"
	"path"
	"strings"

	"github.com/voidshard/easel/pkg/structs"
)

// Message types sent over the progress stream.
const (
	msgProgress    = "progress"
	msgExecuting   = "executing"
	msgSuccess     = "execution_success"
	msgError       = "execution_error"
	msgInterrupted = "execution_interrupted"
)

// ProgressFunc receives remote progress, value out of max.
type ProgressFunc func(value, max int)

// Output is a single file produced by an execution.
type Output struct {
	Kind structs.MediaKind

	// Node is the id of the workflow node that produced the file.
	Node string

	Filename  string
	Subfolder string
	Type      string

	// Format as reported by the server, if any (eg. "video/h264-mp4")
	Format    string
	FrameRate float64

	ContentType string
	Data        []byte
}

// Result is everything a finished execution produced.
type Result struct {
	PromptID string
	Outputs  []*Output
}

type promptRequest struct {
	Prompt   json.RawMessage `json:"prompt"`
	ClientID string          `json:"client_id"`
}

type promptResponse struct {
	PromptID   string          `json:"prompt_id"`
	Number     int             `json:"number"`
	NodeErrors json.RawMessage `json:"node_errors,omitempty"`
}

type uploadResponse struct {
	Name      string `json:"name"`
	Subfolder string `json:"subfolder"`
	Type      string `json:"type"`
}

type message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type progressData struct {
	Value    int    `json:"value"`
	Max      int    `json:"max"`
	PromptID string `json:"prompt_id,omitempty"`
	Node     string `json:"node,omitempty"`
}

type executingData struct {
	Node     *string `json:"node"`
	PromptID string  `json:"prompt_id"`
}

type promptData struct {
	PromptID string `json:"prompt_id"`
}

type errorData struct {
	PromptID         string `json:"prompt_id"`
	NodeID           string `json:"node_id"`
	NodeType         string `json:"node_type"`
	ExceptionMessage string `json:"exception_message"`
	ExceptionType    string `json:"exception_type"`
}

type historyEntry struct {
	Outputs map[string]nodeOutput `json:"outputs"`
	Status  struct {
		StatusStr string `json:"status_str"`
		Completed bool   `json:"completed"`
	} `json:"status"`
}

type nodeOutput struct {
	Images []fileRef `json:"images"`
	Gifs   []fileRef `json:"gifs"`
	Videos []fileRef `json:"videos"`
}

type fileRef struct {
	Filename  string  `json:"filename"`
	Subfolder string  `json:"subfolder"`
	Type      string  `json:"type"`
	Format    string  `json:"format,omitempty"`
	FrameRate float64 `json:"frame_rate,omitempty"`
}

var videoExt = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
	".mkv":  true,
	".avi":  true,
}

// kind decides whether a produced file is a still (including animated gif / webp) or a video.
func (f *fileRef) kind() structs.MediaKind {
	if strings.HasPrefix(f.Format, "video/") {
		return structs.MediaVideo
	}
	if strings.HasPrefix(f.Format, "image/") {
		return structs.MediaImage
	}
	if videoExt[strings.ToLower(path.Ext(f.Filename))] {
		return structs.MediaVideo
	}
	return structs.MediaImage
}
