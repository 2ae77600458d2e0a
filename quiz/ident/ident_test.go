package ident

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("length", func(t *testing.T) {
		id := New()
		if len(id) != Length {
			t.Errorf("Expected %d-character identifier, got %d characters", Length, len(id))
		}
	})

	t.Run("charset", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			id := New()
			for _, r := range id {
				if !strings.ContainsRune(alphabet, r) {
					t.Fatalf("Identifier %q contains character %q outside the alphabet", id, r)
				}
			}
		}
	})

	t.Run("no character favored", func(t *testing.T) {
		const samples = 20000
		counts := make(map[byte]int, len(alphabet))
		for i := 0; i < samples; i++ {
			for _, ch := range []byte(New()) {
				counts[ch]++
			}
		}

		// A byte-modulo generator skews the first 256%36 characters up
		// by a factor of 8/7 (~14%); an unbiased one stays well inside
		// a 10% band of the mean at this sample size.
		expected := float64(samples*Length) / float64(len(alphabet))
		for i := 0; i < len(alphabet); i++ {
			got := float64(counts[alphabet[i]])
			if got < expected*0.9 || got > expected*1.1 {
				t.Errorf("Character %q drawn %.0f times, expected about %.0f", alphabet[i], got, expected)
			}
		}
	})

	t.Run("not constant", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			seen[New()] = true
		}
		if len(seen) < 2 {
			t.Error("Expected generator to produce varying identifiers")
		}
	})
}

func TestNewUnique(t *testing.T) {
	t.Run("nil predicate", func(t *testing.T) {
		if id := NewUnique(nil); len(id) != Length {
			t.Errorf("Expected %d-character identifier, got %q", Length, id)
		}
	})

	t.Run("retries on collision", func(t *testing.T) {
		calls := 0
		id := NewUnique(func(candidate string) bool {
			calls++
			// Reject the first two candidates to force retries.
			return calls <= 2
		})

		if calls != 3 {
			t.Errorf("Expected 3 predicate calls, got %d", calls)
		}
		if len(id) != Length {
			t.Errorf("Expected %d-character identifier, got %q", Length, id)
		}
	})

	t.Run("accepts first free identifier", func(t *testing.T) {
		taken := map[string]bool{}
		id := NewUnique(func(candidate string) bool { return taken[candidate] })
		if taken[id] {
			t.Errorf("Returned identifier %q was marked as taken", id)
		}
	})
}
