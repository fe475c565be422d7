package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		Name   string
		Given  string
		Expect zerolog.Level
	}{
		{"Empty", "", zerolog.InfoLevel},
		{"Unknown", "loud", zerolog.InfoLevel},
		{"Debug", "debug", zerolog.DebugLevel},
		{"UpperWarn", " WARN ", zerolog.WarnLevel},
		{"Error", "error", zerolog.ErrorLevel},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, ParseLevel(c.Given))
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	log := newLogger(buf, "warn", false)

	log.Info().Msg("dropped")
	log.Warn().Str("job_id", "j").Msg("kept")

	result := map[string]interface{}{}
	assert.Nil(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "kept", result["message"])
	assert.Equal(t, "j", result["job_id"])
	assert.Equal(t, "easel", result["service"])
}

func TestNewLoggerDebug(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	log := newLogger(buf, "error", true)

	log.Debug().Msg("visible")

	assert.Contains(t, buf.String(), "visible")
}
