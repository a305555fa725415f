// Package objectid generates the 24 character hexadecimal identifiers used
// for stored books. The first 8 digits encode the creation time in seconds,
// so identifiers sort roughly by insertion; the remaining 16 are random.
package objectid

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Length is the number of hex digits in an identifier.
	Length   = 24
	alphabet = "0123456789abcdef"
)

// New returns an identifier stamped with t.
func New(t time.Time) (string, error) {
	suffix, err := gonanoid.Generate(alphabet, Length-8)
	if err != nil {
		return "", fmt.Errorf("generate object id: %w", err)
	}
	return fmt.Sprintf("%08x", uint32(t.Unix())) + suffix, nil
}

// Valid reports whether s is a well-formed identifier: exactly 24 lowercase hex digits.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
