package database

import (
	"github.com/mathquiz/mathquiz-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.MathProblemSession{},
		&entity.MathProblemSubmission{},
	)
	return err
}
