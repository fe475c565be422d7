package api

import (
	"github.com/rs/zerolog"
)

const (
	defMediaDir     = "./media"
	defMediaBaseURL = "/media"
)

// Options passed to the Easel API on creation
type Options struct {
	// MediaDir is where produced (and uploaded) media is written.
	MediaDir string

	// MediaBaseURL prefixes storage keys to form the URL of a media record.
	MediaBaseURL string

	// MaxRetries is the default number of user retries a job gets.
	MaxRetries int

	Logger *zerolog.Logger
}

// OptionsDefault returns Options with media kept in ./media
func OptionsDefault() *Options {
	return &Options{
		MediaDir:     defMediaDir,
		MediaBaseURL: defMediaBaseURL,
	}
}

func (o *Options) SetDefaults() {
	if o.MediaDir == "" {
		o.MediaDir = defMediaDir
	}
	if o.MediaBaseURL == "" {
		o.MediaBaseURL = defMediaBaseURL
	}
	if o.Logger == nil {
		l := zerolog.Nop()
		o.Logger = &l
	}
}
