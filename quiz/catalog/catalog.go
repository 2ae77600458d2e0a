// Package catalog holds the process-wide collection of published quiz
// definitions. The catalog is append-only for the process lifetime: quizzes
// are never updated, deleted, or deduplicated, and every query returns the
// full catalog in publication order.
package catalog

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/quizhub/quizhub/quiz/ident"
)

// Defaults applied when a publisher omits metadata.
const (
	DefaultTitle  = "Untitled Quiz"
	DefaultAuthor = "Anonymous"
)

// Quiz is one published quiz definition. QuestionCount is always derived
// from the supplied question data, never trusted from the publisher. Data
// entries are kept as raw JSON since question payloads may embed large
// binary media.
type Quiz struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Author        string            `json:"author"`
	QuestionCount int               `json:"questionCount"`
	CreatedAt     time.Time         `json:"created_at"`
	Data          []json.RawMessage `json:"data"`
}

// Catalog is the thread-safe, append-only quiz store. Like the room
// registry it is constructed once at startup and injected; there is no
// ambient global instance.
type Catalog struct {
	quizzes []*Quiz
	ids     map[string]struct{}
	mu      sync.RWMutex
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		ids: make(map[string]struct{}),
	}
}

// Publish appends a new quiz to the catalog and returns it. Empty title
// and author fall back to DefaultTitle and DefaultAuthor. A nil question
// list publishes an empty quiz rather than failing; malformed input is
// defended against by defaulting, not rejected.
func (c *Catalog) Publish(title, author string, data []json.RawMessage) *Quiz {
	if title == "" {
		title = DefaultTitle
	}
	if author == "" {
		author = DefaultAuthor
	}
	if data == nil {
		data = []json.RawMessage{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := ident.NewUnique(func(candidate string) bool {
		_, exists := c.ids[candidate]
		return exists
	})

	q := &Quiz{
		ID:            id,
		Title:         title,
		Author:        author,
		QuestionCount: len(data),
		CreatedAt:     time.Now(),
		Data:          data,
	}

	c.quizzes = append(c.quizzes, q)
	c.ids[id] = struct{}{}

	return q
}

// List returns the full catalog in publication order. The returned slice
// is a copy; the quizzes themselves are shared and treated as immutable
// after publication.
func (c *Catalog) List() []*Quiz {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Quiz, len(c.quizzes))
	copy(out, c.quizzes)
	return out
}

// Count returns the number of published quizzes.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.quizzes)
}
