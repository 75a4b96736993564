package repository

import (
	"github.com/mathquiz/mathquiz-be/internal/entity"
	"gorm.io/gorm"
)

type (
	MathProblemRepository interface {
		// Session operations
		CreateSession(db *gorm.DB, session *entity.MathProblemSession) error
		FindSessionByID(db *gorm.DB, sessionID string) (*entity.MathProblemSession, error)

		// Submission operations
		CreateSubmission(db *gorm.DB, submission *entity.MathProblemSubmission) error
		FindSubmissionsBySessionID(db *gorm.DB, sessionID string) ([]entity.MathProblemSubmission, error)
	}

	mathProblemRepository struct {
		db *gorm.DB
	}
)

func NewMathProblemRepository(db *gorm.DB) MathProblemRepository {
	return &mathProblemRepository{db: db}
}

// Session operations
func (r *mathProblemRepository) CreateSession(db *gorm.DB, session *entity.MathProblemSession) error {
	if db == nil {
		db = r.db
	}
	return db.Create(session).Error
}

func (r *mathProblemRepository) FindSessionByID(db *gorm.DB, sessionID string) (*entity.MathProblemSession, error) {
	if db == nil {
		db = r.db
	}
	var session entity.MathProblemSession
	err := db.Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Submission operations
func (r *mathProblemRepository) CreateSubmission(db *gorm.DB, submission *entity.MathProblemSubmission) error {
	if db == nil {
		db = r.db
	}
	return db.Create(submission).Error
}

func (r *mathProblemRepository) FindSubmissionsBySessionID(db *gorm.DB, sessionID string) ([]entity.MathProblemSubmission, error) {
	if db == nil {
		db = r.db
	}
	var submissions []entity.MathProblemSubmission
	err := db.Where("session_id = ?", sessionID).Order("created_at DESC").Find(&submissions).Error
	return submissions, err
}
