package reskey

import (
	"errors"
	"fmt"
)

// Decode errors. Encoding never returns errors: a field that does not fit
// its bit budget is a programming error and panics.
var (
	// ErrWrongDomain is returned when a key of another domain is decoded.
	ErrWrongDomain = errors.New("reskey: wrong key domain")

	// ErrKeyLength is returned when a key has an unexpected word count.
	ErrKeyLength = errors.New("reskey: wrong key length")

	// ErrCorruptKey is returned when a key's words do not describe a
	// supported configuration.
	ErrCorruptKey = errors.New("reskey: corrupt key")
)

func checkKey(key ResourceKey, domain Domain, words int) error {
	if key.Domain() != domain {
		return fmt.Errorf("%w: got %v, want %v", ErrWrongDomain, key.Domain(), domain)
	}
	if key.Len() != words {
		return fmt.Errorf("%w: %v key has %d words, want %d", ErrKeyLength, domain, key.Len(), words)
	}
	return nil
}
