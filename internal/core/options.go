package core

import (
	"github.com/rs/zerolog"

	"github.com/voidshard/easel/pkg/structs"
)

// Options for the core service.
type Options struct {
	// MaxRetries is the default number of times a failed job may be retried, used when a
	// submission doesn't ask for something else.
	MaxRetries int

	Logger *zerolog.Logger
}

func (o *Options) SetDefaults() {
	if o.MaxRetries <= 0 {
		o.MaxRetries = structs.DefaultMaxRetries
	}
	if o.Logger == nil {
		l := zerolog.Nop()
		o.Logger = &l
	}
}
