package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeta(t *testing.T) {
	cases := []struct {
		Name          string
		Given         *Meta
		ExpectAttempt int
		ExpectFinal   bool
	}{
		{"FirstOfThree", &Meta{Retried: 0, MaxRetry: 2}, 1, false},
		{"SecondOfThree", &Meta{Retried: 1, MaxRetry: 2}, 2, false},
		{"LastOfThree", &Meta{Retried: 2, MaxRetry: 2}, 3, true},
		{"NoRetries", &Meta{}, 1, true},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.ExpectAttempt, c.Given.Attempt())
			assert.Equal(t, c.ExpectFinal, c.Given.Final())
		})
	}
}
