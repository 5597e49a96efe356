package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	Level       string    `gorm:"column:level" json:"level"`

	// Pathway metadata is all-or-nothing: a course with only some of these columns
	// set is treated as having no pathway at all (see Pathway()).
	PathwayName           string `gorm:"column:pathway_name;index" json:"pathway_name,omitempty"`
	PathwayStage          int    `gorm:"column:pathway_stage" json:"pathway_stage,omitempty"`
	PathwayStageTitle     string `gorm:"column:pathway_stage_title" json:"pathway_stage_title,omitempty"`
	PathwayTotalStages    int    `gorm:"column:pathway_total_stages" json:"pathway_total_stages,omitempty"`
	PathwayEstimatedWeeks int    `gorm:"column:pathway_estimated_weeks" json:"pathway_estimated_weeks,omitempty"`

	Prerequisites []*CoursePrerequisite `gorm:"foreignKey:CourseID;references:ID" json:"prerequisites,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }

// PathwayInfo is the derived, fully-populated pathway block of a course.
type PathwayInfo struct {
	Name           string `json:"name"`
	Stage          int    `json:"stage"`
	StageTitle     string `json:"stage_title"`
	TotalStages    int    `json:"total_stages"`
	EstimatedWeeks int    `json:"estimated_weeks"`
}

// Pathway returns the course's pathway block, or nil when the metadata is absent
// or incomplete. Stage and TotalStages are 1-indexed, so zero means unset.
func (c *Course) Pathway() *PathwayInfo {
	if c == nil {
		return nil
	}
	if c.PathwayName == "" || c.PathwayStage <= 0 || c.PathwayTotalStages <= 0 {
		return nil
	}
	return &PathwayInfo{
		Name:           c.PathwayName,
		Stage:          c.PathwayStage,
		StageTitle:     c.PathwayStageTitle,
		TotalStages:    c.PathwayTotalStages,
		EstimatedWeeks: c.PathwayEstimatedWeeks,
	}
}
