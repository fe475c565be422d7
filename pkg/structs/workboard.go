package structs

import (
	"fmt"
)

// FieldType is the declared type of a workboard custom field.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldSelect  FieldType = "select"
	FieldImage   FieldType = "image"
	FieldFile    FieldType = "file"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
)

// IsImage is true for fields whose value references a stored image that must be uploaded
// to the compute server before rendering.
func (f FieldType) IsImage() bool {
	return f == FieldImage || f == FieldFile
}

// BaseInputFields are the closed option sets a workboard offers for its standard inputs.
// The first option of each set is the default.
type BaseInputFields struct {
	Models           []Option `json:"models,omitempty"`
	Sizes            []Option `json:"sizes,omitempty"`
	ReferenceMethods []Option `json:"referenceMethods,omitempty"`
	StylePresets     []Option `json:"stylePresets,omitempty"`
	UpscaleMethods   []Option `json:"upscaleMethods,omitempty"`
	Samplers         []Option `json:"samplers,omitempty"`
	Schedulers       []Option `json:"schedulers,omitempty"`
}

// InputField is a named custom field of a workboard.
type InputField struct {
	Name         string     `json:"name"`
	Label        string     `json:"label,omitempty"`
	Type         FieldType  `json:"type"`
	Required     bool       `json:"required,omitempty"`
	DefaultValue InputValue `json:"defaultValue,omitempty"`
	Options      []Option   `json:"options,omitempty"`

	// FormatString is the placeholder token substituted by this field's value.
	// Defaults to {{##name##}}
	FormatString string `json:"formatString,omitempty"`
}

// Token returns the placeholder this field replaces.
func (f *InputField) Token() string {
	if f.FormatString != "" {
		return f.FormatString
	}
	return Placeholder(f.Name)
}

// Placeholder builds the default placeholder token for a name.
func Placeholder(name string) string {
	return fmt.Sprintf("{{##%s##}}", name)
}

// WorkboardSpec are fields that can be set when a workboard is created.
type WorkboardSpec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	BaseInputFields       BaseInputFields `json:"baseInputFields"`
	AdditionalInputFields []InputField    `json:"additionalInputFields"`

	// WorkflowTemplate is the JSON workflow document containing placeholder tokens.
	WorkflowTemplate string `json:"workflowTemplate"`

	// ServerAddress is the base URL of the compute server, eg. http://gpu-01:8188
	ServerAddress string `json:"serverAddress"`
}

// Workboard is a reusable job template.
type Workboard struct {
	WorkboardSpec `json:",inline"`

	ID string `json:"id"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// WorkboardRef is the snapshot of a workboard captured onto a job at submission time.
type WorkboardRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	BaseInputFields       BaseInputFields `json:"baseInputFields"`
	AdditionalInputFields []InputField    `json:"additionalInputFields"`
	WorkflowTemplate      string          `json:"workflowTemplate"`
	ServerAddress         string          `json:"serverAddress"`
}

// Ref snapshots the workboard.
func (w *Workboard) Ref() WorkboardRef {
	fields := make([]InputField, len(w.AdditionalInputFields))
	copy(fields, w.AdditionalInputFields)
	return WorkboardRef{
		ID:                    w.ID,
		Name:                  w.Name,
		BaseInputFields:       w.BaseInputFields,
		AdditionalInputFields: fields,
		WorkflowTemplate:      w.WorkflowTemplate,
		ServerAddress:         w.ServerAddress,
	}
}

// FirstOption returns the default (first) option of a set, if any.
func FirstOption(in []Option) (InputValue, bool) {
	if len(in) == 0 {
		return InputValue{}, false
	}
	return Choice(in[0].Key, in[0].Value), true
}
