package catalog

import (
	"encoding/json"
	"testing"
)

func questions(n int) []json.RawMessage {
	data := make([]json.RawMessage, n)
	for i := range data {
		data[i] = json.RawMessage(`{"question":"q","options":["a","b"],"answer":0}`)
	}
	return data
}

func TestCatalog_Publish(t *testing.T) {
	t.Run("explicit metadata", func(t *testing.T) {
		c := NewCatalog()
		q := c.Publish("Capitals", "teacher42", questions(3))

		if q.Title != "Capitals" {
			t.Errorf("Expected title Capitals, got %q", q.Title)
		}
		if q.Author != "teacher42" {
			t.Errorf("Expected author teacher42, got %q", q.Author)
		}
		if q.QuestionCount != 3 {
			t.Errorf("Expected question count 3, got %d", q.QuestionCount)
		}
		if len(q.ID) != 6 {
			t.Errorf("Expected 6-character quiz ID, got %q", q.ID)
		}
	})

	t.Run("defaults when metadata absent", func(t *testing.T) {
		c := NewCatalog()
		q := c.Publish("", "", questions(1))

		if q.Title != DefaultTitle {
			t.Errorf("Expected %q, got %q", DefaultTitle, q.Title)
		}
		if q.Author != DefaultAuthor {
			t.Errorf("Expected %q, got %q", DefaultAuthor, q.Author)
		}
	})

	t.Run("question count always derived", func(t *testing.T) {
		c := NewCatalog()
		q := c.Publish("Mismatch", "", questions(5))
		if q.QuestionCount != 5 {
			t.Errorf("Expected derived count 5, got %d", q.QuestionCount)
		}
	})

	t.Run("nil data defaults to empty quiz", func(t *testing.T) {
		c := NewCatalog()
		q := c.Publish("Empty", "", nil)
		if q.QuestionCount != 0 {
			t.Errorf("Expected question count 0, got %d", q.QuestionCount)
		}
		if q.Data == nil {
			t.Error("Expected non-nil data slice")
		}
	})
}

func TestCatalog_List(t *testing.T) {
	c := NewCatalog()

	t.Run("empty catalog", func(t *testing.T) {
		if got := c.List(); len(got) != 0 {
			t.Errorf("Expected empty list, got %d quizzes", len(got))
		}
	})

	t.Run("publication order preserved", func(t *testing.T) {
		first := c.Publish("First", "", questions(1))
		second := c.Publish("Second", "", questions(1))
		third := c.Publish("Third", "", questions(1))

		got := c.List()
		if len(got) != 3 {
			t.Fatalf("Expected 3 quizzes, got %d", len(got))
		}
		for i, want := range []*Quiz{first, second, third} {
			if got[i].ID != want.ID {
				t.Errorf("Position %d: expected %s, got %s", i, want.ID, got[i].ID)
			}
		}
	})

	t.Run("append-only growth", func(t *testing.T) {
		before := c.Count()
		c.Publish("Another", "", questions(2))
		if c.Count() != before+1 {
			t.Errorf("Expected count %d, got %d", before+1, c.Count())
		}
	})
}
