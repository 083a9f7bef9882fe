// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"strings"
)

// IDAlphabet and IDLength define the shape of every generated record ID.
// Generation goes through go-nanoid with this exact alphabet, so anything
// outside it is malformed by construction and can be rejected before the
// database is ever asked.
const (
	IDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	IDLength   = 16
)

var (
	ErrIDEmpty     = errors.New("no id provided")
	ErrIDMalformed = errors.New("malformed id provided")
)

func IDValidator(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDEmpty
	}

	if len(id) != IDLength {
		return ErrIDMalformed
	}

	for i := 0; i < len(id); i++ {
		if !strings.ContainsRune(IDAlphabet, rune(id[i])) {
			return ErrIDMalformed
		}
	}

	return nil
}
