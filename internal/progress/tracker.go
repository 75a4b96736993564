// Package progress holds the client-side quiz ledger: a cumulative score and
// an append-only attempt history, loaded from on-device storage at startup
// and written back through on every change. It is a local cache for the
// presentation boundary, never a second source of truth for the persisted
// sessions.
package progress

import (
	"encoding/json"
	"strconv"
	"sync"
)

const (
	scoreKey   = "quizScore"
	historyKey = "quizHistory"
)

// Entry is one graded attempt as the client remembers it.
type Entry struct {
	ID                 string   `json:"id"`
	Problem            string   `json:"problem"`
	UserAnswer         string   `json:"userAnswer"`
	IsCorrect          bool     `json:"isCorrect"`
	Type               string   `json:"type"`
	Difficulty         string   `json:"difficulty"`
	CorrectAnswer      float64  `json:"correctAnswer"`
	StepByStepSolution []string `json:"step_by_step_solution"`
}

// Tracker owns the score and history for one tab lifetime.
type Tracker struct {
	mu      sync.Mutex
	storage Storage
	score   int
	history []Entry
}

// NewTracker builds a Tracker, initializing score and history from storage.
// Corrupt or missing stored values degrade to zero state.
func NewTracker(storage Storage) *Tracker {
	t := &Tracker{storage: storage}

	if v, ok, err := storage.Load(scoreKey); err == nil && ok {
		if n, err := strconv.Atoi(v); err == nil {
			t.score = n
		}
	}
	if v, ok, err := storage.Load(historyKey); err == nil && ok {
		var history []Entry
		if err := json.Unmarshal([]byte(v), &history); err == nil {
			t.history = history
		}
	}

	return t
}

// Score returns the cumulative score.
func (t *Tracker) Score() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.score
}

// History returns the attempts in insertion order.
func (t *Tracker) History() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.history))
	copy(out, t.history)
	return out
}

// RecentFirst returns a reverse-chronological view without mutating the
// underlying sequence.
func (t *Tracker) RecentFirst() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.history))
	for i, e := range t.history {
		out[len(t.history)-1-i] = e
	}
	return out
}

// Record appends a graded attempt, bumps the score when it was correct, and
// writes both keys through to storage.
func (t *Tracker) Record(entry Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.history = append(t.history, entry)
	if entry.IsCorrect {
		t.score++
	}
	return t.persist()
}

// Reset zeroes the score, empties the history and clears the stored keys.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.score = 0
	t.history = nil

	if err := t.storage.Remove(scoreKey); err != nil {
		return err
	}
	return t.storage.Remove(historyKey)
}

func (t *Tracker) persist() error {
	if err := t.storage.Store(scoreKey, strconv.Itoa(t.score)); err != nil {
		return err
	}
	data, err := json.Marshal(t.history)
	if err != nil {
		return err
	}
	return t.storage.Store(historyKey, string(data))
}
