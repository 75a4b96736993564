package progress

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestRecordOrderingAndScore(t *testing.T) {
	tr := NewTracker(NewMemoryStorage())

	for i := 0; i < 5; i++ {
		err := tr.Record(Entry{
			ID:        fmt.Sprintf("session-%d", i),
			Problem:   "2 + 2 = ?",
			IsCorrect: i%2 == 0,
		})
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	history := tr.History()
	if len(history) != 5 {
		t.Fatalf("history length = %d, want 5", len(history))
	}
	for i, e := range history {
		if want := fmt.Sprintf("session-%d", i); e.ID != want {
			t.Errorf("history[%d].ID = %s, want %s", i, e.ID, want)
		}
	}

	// Entries 0, 2, 4 were correct.
	if tr.Score() != 3 {
		t.Fatalf("score = %d, want 3", tr.Score())
	}
}

func TestRecentFirstDoesNotMutate(t *testing.T) {
	tr := NewTracker(NewMemoryStorage())
	for i := 0; i < 3; i++ {
		tr.Record(Entry{ID: fmt.Sprintf("s-%d", i)})
	}

	recent := tr.RecentFirst()
	if recent[0].ID != "s-2" || recent[2].ID != "s-0" {
		t.Fatalf("unexpected recent order: %v", recent)
	}

	history := tr.History()
	if history[0].ID != "s-0" {
		t.Fatal("underlying history was mutated by RecentFirst")
	}
}

func TestReset(t *testing.T) {
	storage := NewMemoryStorage()
	tr := NewTracker(storage)
	tr.Record(Entry{ID: "s-1", IsCorrect: true})

	if err := tr.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if tr.Score() != 0 {
		t.Fatalf("score after reset = %d", tr.Score())
	}
	if len(tr.History()) != 0 {
		t.Fatal("history not empty after reset")
	}
	if _, ok, _ := storage.Load("quizScore"); ok {
		t.Fatal("quizScore key still present after reset")
	}
	if _, ok, _ := storage.Load("quizHistory"); ok {
		t.Fatal("quizHistory key still present after reset")
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	tr := NewTracker(NewFileStorage(path))
	tr.Record(Entry{ID: "s-1", Problem: "3 x 4 = ?", IsCorrect: true, CorrectAnswer: 12})
	tr.Record(Entry{ID: "s-2", Problem: "10 - 7 = ?", IsCorrect: false, CorrectAnswer: 3})

	// A new tracker over the same file sees the persisted state.
	reloaded := NewTracker(NewFileStorage(path))
	if reloaded.Score() != 1 {
		t.Fatalf("reloaded score = %d, want 1", reloaded.Score())
	}
	history := reloaded.History()
	if len(history) != 2 || history[1].ID != "s-2" {
		t.Fatalf("unexpected reloaded history: %v", history)
	}
}

func TestCorruptStorageDegradesToZeroState(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Store("quizScore", "not-a-number")
	storage.Store("quizHistory", "{broken json")

	tr := NewTracker(storage)
	if tr.Score() != 0 || len(tr.History()) != 0 {
		t.Fatal("corrupt stored values must degrade to zero state")
	}
}
