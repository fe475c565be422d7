package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	assert.Equal(t, NewID(1), NewID(1))
	assert.NotEqual(t, NewID(1), NewID(2))

	_, err := uuid.Parse(NewID(3))
	assert.Nil(t, err)
}

func TestNewRandomID(t *testing.T) {
	a, b := NewRandomID(), NewRandomID()

	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.Nil(t, err)
}

func TestIsValidID(t *testing.T) {
	cases := []struct {
		Name   string
		Given  string
		Expect bool
	}{
		{"Random", NewRandomID(), true},
		{"Deterministic", NewID(7), true},
		{"Empty", "", false},
		{"Garbage", "job-1; drop table", false},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, IsValidID(c.Given))
		})
	}
}
