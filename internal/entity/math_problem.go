package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MathProblemSession - one generated problem paired with its correct answer.
// Rows are written once and never mutated.
type MathProblemSession struct {
	ID            string    `gorm:"primarykey;size:36" json:"id"`
	ProblemText   string    `gorm:"type:text;not null" json:"problem_text"`
	CorrectAnswer float64   `gorm:"not null" json:"correct_answer"`
	CreatedAt     time.Time `json:"created_at"`
}

func (MathProblemSession) TableName() string {
	return "math_problem_sessions"
}

// BeforeCreate assigns the opaque session identifier.
func (s *MathProblemSession) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// MathProblemSubmission - one graded attempt against a session. Append-only.
type MathProblemSubmission struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SessionID    string    `gorm:"size:36;not null;index" json:"session_id"`
	UserAnswer   float64   `gorm:"not null" json:"user_answer"`
	IsCorrect    bool      `gorm:"not null" json:"is_correct"`
	FeedbackText string    `gorm:"type:text" json:"feedback_text"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MathProblemSubmission) TableName() string {
	return "math_problem_submissions"
}
