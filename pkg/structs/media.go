package structs

// MediaKind is the broad type of a persisted output.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaMetadata is whatever we could learn about the media bytes.
//
// Width & Height are 0 when the dimensions could not be determined.
type MediaMetadata struct {
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	Format    string  `json:"format,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
	FrameRate float64 `json:"frameRate,omitempty"`
}

// GenerationParams is a snapshot of the resolved parameters that produced a media item.
type GenerationParams struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negativePrompt,omitempty"`
	Seed           uint64 `json:"seed"`
	Model          string `json:"model,omitempty"`
	Size           string `json:"size,omitempty"`
	Sampler        string `json:"sampler,omitempty"`
	Scheduler      string `json:"scheduler,omitempty"`
	WorkboardID    string `json:"workboardId,omitempty"`
	WorkboardName  string `json:"workboardName,omitempty"`
}

// Media is a persisted output artifact produced by a completed job.
type Media struct {
	ID     string    `json:"id"`
	JobID  string    `json:"jobId"`
	UserID string    `json:"userId"`
	Kind   MediaKind `json:"kind"`

	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`

	// StorageKey is the location of the bytes within the media store.
	StorageKey string `json:"storageKey"`
	URL        string `json:"url"`

	Metadata   MediaMetadata    `json:"metadata"`
	Parameters GenerationParams `json:"parameters"`

	CreatedAt int64 `json:"createdAt"`
}
