package types

import (
	"time"

	"github.com/google/uuid"
)

const DefaultMinimumScore = 70

// CoursePrerequisite is one directed edge in the prerequisite graph: CourseID is
// gated until RequiresCourseID has been completed at or above MinimumScore.
// Position preserves the declared edge order on the course.
type CoursePrerequisite struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID         uuid.UUID `gorm:"type:uuid;not null;index:idx_course_requires,unique" json:"course_id"`
	RequiresCourseID uuid.UUID `gorm:"type:uuid;not null;index:idx_course_requires,unique" json:"requires_course_id"`
	MinimumScore     int       `gorm:"column:minimum_score;not null;default:70" json:"minimum_score"`
	Position         int       `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (CoursePrerequisite) TableName() string { return "course_prerequisite" }
