package goal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// Goal is one study goal a user tracks, e.g. "finish all June 2021 papers
// before the mocks".
type Goal struct {
	ID         uint           `json:"-" gorm:"primaryKey"`
	PublicID   string         `json:"id" gorm:"uniqueIndex;size:36;not null"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	Title      string         `json:"title" gorm:"size:200;not null"`
	ExamLevel  string         `json:"exam_level" gorm:"size:16"`
	TargetDate *time.Time     `json:"target_date"`
	Status     Status         `json:"status" gorm:"type:varchar(12);not null;default:'active'"`
	Progress   int            `json:"progress" gorm:"not null;default:0"` // percent, 0..100
	Notes      string         `json:"notes"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns the public id.
func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.PublicID == "" {
		g.PublicID = uuid.New().String()
	}
	return nil
}

// ClampProgress keeps the progress percentage in range.
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Overdue reports whether an active goal has passed its target date.
func (g *Goal) Overdue(now time.Time) bool {
	if g.Status != StatusActive || g.TargetDate == nil {
		return false
	}
	return now.After(*g.TargetDate)
}
