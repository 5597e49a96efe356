package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ProgressStatusNotStarted = "not-started"
	ProgressStatusInProgress = "in-progress"
	ProgressStatusCompleted  = "completed"
)

// CourseProgress is the ledger row for one (student, course) pair. Rows are
// created on first access and mutated as the student advances; the gating engine
// only ever reads them.
type CourseProgress struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"user_id"`
	User                 *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID             uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"course_id"`
	Course               *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Status               string         `gorm:"column:status;not null;default:'not-started'" json:"status"`
	CompletionPercentage int            `gorm:"column:completion_percentage;not null;default:0" json:"completion_percentage"`
	PointsEarned         int            `gorm:"column:points_earned;not null;default:0" json:"points_earned"`
	LastAccessedAt       *time.Time     `gorm:"column:last_accessed_at" json:"last_accessed_at,omitempty"`
	CompletedAt          *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Metadata             datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	CreatedAt            time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CourseProgress) TableName() string { return "course_progress" }

func ValidProgressStatus(status string) bool {
	switch status {
	case ProgressStatusNotStarted, ProgressStatusInProgress, ProgressStatusCompleted:
		return true
	}
	return false
}
