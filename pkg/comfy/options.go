package comfy

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// defaultTimeout bounds a whole remote execution, from submit to the last download.
	defaultTimeout = 300 * time.Second

	defaultRequestTimeout = 60 * time.Second
	defaultHistoryRetries = 10
	defaultHistoryBackoff = 250 * time.Millisecond
)

// Options configures a Client.
type Options struct {
	// Timeout for an entire Execute call
	Timeout time.Duration

	// RequestTimeout for any single HTTP call
	RequestTimeout time.Duration

	// HistoryRetries is how many times the history is polled after completion is signalled,
	// since some servers write history slightly after the completion message.
	HistoryRetries int
	HistoryBackoff time.Duration

	HTTPClient *http.Client
	Dialer     *websocket.Dialer
	Logger     *zerolog.Logger
}

// SetDefaults fills in any unset options.
func (o *Options) SetDefaults() {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = defaultRequestTimeout
	}
	if o.HistoryRetries <= 0 {
		o.HistoryRetries = defaultHistoryRetries
	}
	if o.HistoryBackoff <= 0 {
		o.HistoryBackoff = defaultHistoryBackoff
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: o.RequestTimeout}
	}
	if o.Dialer == nil {
		o.Dialer = &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: o.RequestTimeout,
		}
	}
	if o.Logger == nil {
		l := zerolog.Nop()
		o.Logger = &l
	}
}
