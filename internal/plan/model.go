package plan

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudyPlan is an AI-generated study plan persisted as a JSON document.
type StudyPlan struct {
	ID         uint           `json:"-" gorm:"primaryKey"`
	PublicID   string         `json:"id" gorm:"uniqueIndex;size:36;not null"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	ExamLevel  string         `json:"exam_level" gorm:"size:16;not null"`
	TargetDate *time.Time     `json:"target_date"`
	Prompt     string         `json:"prompt"`
	Document   datatypes.JSON `json:"document"`
	ModelName  string         `json:"model_name" gorm:"size:64"`
	CreatedAt  time.Time      `json:"createdAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (p *StudyPlan) BeforeCreate(tx *gorm.DB) error {
	if p.PublicID == "" {
		p.PublicID = uuid.New().String()
	}
	return nil
}
