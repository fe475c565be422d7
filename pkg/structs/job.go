package structs

import (
	"encoding/json"
)

const (
	// DefaultMaxRetries is how many times a failed job may be retried (spawning a new job each time)
	DefaultMaxRetries = 3
)

// ReferenceImage points at a stored image used to guide generation.
type ReferenceImage struct {
	// ImageID is the ID of a stored Media record.
	ImageID string `json:"imageId"`

	// Method is the blend / reference method, eg. {"key": "Style", "value": "style_transfer"}
	Method InputValue `json:"method,omitempty"`

	// Strength of the reference, usually 0-1.
	Strength float64 `json:"strength,omitempty"`
}

// JobInput is the user supplied parameter set of a generation request.
type JobInput struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negativePrompt,omitempty"`

	Model         InputValue `json:"model,omitempty"`
	Size          InputValue `json:"size,omitempty"`
	Sampler       InputValue `json:"sampler,omitempty"`
	Scheduler     InputValue `json:"scheduler,omitempty"`
	StylePreset   InputValue `json:"stylePreset,omitempty"`
	UpscaleMethod InputValue `json:"upscaleMethod,omitempty"`

	ReferenceImages []ReferenceImage `json:"referenceImages,omitempty"`

	// Seed is optional. Once a job has been rendered the resolved seed is written back here.
	Seed          InputValue `json:"seed,omitempty"`
	UseRandomSeed bool       `json:"useRandomSeed,omitempty"`

	// AdditionalParams holds values for the workboard's additional input fields, by field name.
	AdditionalParams map[string]InputValue `json:"additionalParams,omitempty"`

	// Extra holds any other top level fields, keyed by field name; consulted after
	// AdditionalParams. They are (un)marshalled flat alongside the named fields.
	Extra map[string]InputValue `json:"-"`
}

// jobInput drops JobInput's methods so the named fields can use the default codec.
type jobInput JobInput

// UnmarshalJSON decodes the named fields & collects every other top level key into Extra.
func (i *JobInput) UnmarshalJSON(data []byte) error {
	var named jobInput
	if err := json.Unmarshal(data, &named); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	known := jobInputFields()
	for k, raw := range all {
		if known[k] {
			continue
		}
		var v InputValue
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if named.Extra == nil {
			named.Extra = map[string]InputValue{}
		}
		named.Extra[k] = v
	}

	*i = JobInput(named)
	return nil
}

// MarshalJSON writes Extra back out as top level keys. Named fields win on a clash.
func (i JobInput) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(jobInput(i))
	if err != nil || len(i.Extra) == 0 {
		return data, err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	known := jobInputFields()
	for k, v := range i.Extra {
		if known[k] {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		all[k] = raw
	}
	return json.Marshal(all)
}

// jobInputFields is the set of json keys taken by JobInput's named fields.
func jobInputFields() map[string]bool {
	return map[string]bool{
		"prompt":           true,
		"negativePrompt":   true,
		"model":            true,
		"size":             true,
		"sampler":          true,
		"scheduler":        true,
		"stylePreset":      true,
		"upscaleMethod":    true,
		"referenceImages":  true,
		"seed":             true,
		"useRandomSeed":    true,
		"additionalParams": true,
	}
}

// Param returns the value for the named custom field, checking AdditionalParams then Extra.
func (i *JobInput) Param(name string) (InputValue, bool) {
	if v, ok := i.AdditionalParams[name]; ok && !v.IsEmpty() {
		return v, true
	}
	if v, ok := i.Extra[name]; ok && !v.IsEmpty() {
		return v, true
	}
	return InputValue{}, false
}

// JobError is a structured failure recorded on a job.
type JobError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Job is a single generation request & its lifecycle record.
type Job struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Status Status `json:"status"`

	// Priority, higher is scheduled first.
	Priority int `json:"priority"`

	Input JobInput `json:"inputData"`

	// Workboard is a snapshot of the template taken at submission time.
	Workboard WorkboardRef `json:"templateRef"`

	// Progress 0-100
	Progress int `json:"progress"`

	ResultImages []string `json:"resultImages"`
	ResultVideos []string `json:"resultVideos"`

	Error *JobError `json:"error,omitempty"`

	// RetryCount is the number of times this job has been retried (each retry is a new job).
	RetryCount int `json:"retryCount"`
	MaxRetries int `json:"maxRetries"`

	// ParentID is set on jobs spawned by retrying a failed job.
	ParentID string `json:"parentId,omitempty"`

	// Attempts is the number of queue attempts consumed by this job.
	Attempts int `json:"attempts"`

	// QueueTaskID is the ID of the task in the Queue (ie. the ID returned when we Enqueue it).
	QueueTaskID string `json:"queueTaskId,omitempty"`

	// times are unix milliseconds; 0 if not yet reached
	CreatedAt   int64 `json:"createdAt"`
	UpdatedAt   int64 `json:"updatedAt"`
	StartedAt   int64 `json:"startedAt,omitempty"`
	CompletedAt int64 `json:"completedAt,omitempty"`

	// ActualTime is CompletedAt - StartedAt in milliseconds.
	ActualTime int64 `json:"actualTime,omitempty"`
}

// JobView is a job along with its result media.
type JobView struct {
	*Job `json:",inline"`

	Media []*Media `json:"media"`
}
