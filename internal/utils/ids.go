package utils

import (
	"fmt"

	"github.com/google/uuid"
)

var idNamespace = uuid.MustParse("6f1d7a3e-4f0e-4c1b-9d8e-2a9c5b7e1f00")

// NewRandomID returns a new random (v4) id.
func NewRandomID() string {
	return uuid.NewString()
}

// NewID returns a deterministic id for i, handy in tests.
func NewID(i int) string {
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%d", i))).String()
}

// IsValidID reports whether s looks like one of our ids.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
