// Package ident generates the short, human-shareable identifiers used for
// rooms and published quizzes.
//
// Identifiers are 6-character uppercase alphanumeric tokens drawn from
// cryptographic randomness. The raw generator does not guarantee global
// uniqueness; callers that install identifiers into a registry should use
// NewUnique with a lookup against their own state.
package ident

import (
	"crypto/rand"
)

// Length is the number of characters in a generated identifier.
const Length = 6

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// New returns a fresh 6-character uppercase alphanumeric identifier.
// Random bytes are rejection-sampled against the largest multiple of the
// alphabet size below 256, so every character is equally likely.
func New() string {
	const limit = 256 - 256%len(alphabet)

	id := make([]byte, 0, Length)
	buf := make([]byte, Length)
	for len(id) < Length {
		rand.Read(buf)
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			id = append(id, alphabet[int(b)%len(alphabet)])
			if len(id) == Length {
				break
			}
		}
	}
	return string(id)
}

// NewUnique generates identifiers until one is not already taken according
// to the provided predicate. The identifier space is large enough (36^6,
// roughly two billion) that the loop terminates almost immediately in
// practice.
func NewUnique(taken func(string) bool) string {
	for {
		id := New()
		if taken == nil || !taken(id) {
			return id
		}
	}
}
