package types

import "github.com/google/uuid"

// Derived, never-persisted views. Lock state is recomputed on every read from the
// current ledger rows; nothing here is cached.

// CourseWithStatus decorates a catalog course with one student's progress and
// lock state. IsLocked is always the negation of PrerequisitesMet.
type CourseWithStatus struct {
	Course
	UserProgress     *CourseProgress `json:"user_progress,omitempty"`
	PrerequisitesMet bool            `json:"prerequisites_met"`
	IsLocked         bool            `json:"is_locked"`
}

// UnmetPrerequisite reports one failing prerequisite edge. CourseTitle is empty
// when the required course no longer exists in the catalog.
type UnmetPrerequisite struct {
	CourseID     uuid.UUID `json:"course_id"`
	CourseTitle  string    `json:"course_title,omitempty"`
	MinimumScore int       `json:"minimum_score"`
	CurrentScore int       `json:"current_score"`
}

type UnlockCheck struct {
	CanUnlock          bool                `json:"can_unlock"`
	UnmetPrerequisites []UnmetPrerequisite `json:"unmet_prerequisites"`
}

type PathwayStats struct {
	TotalCourses     int `json:"total_courses"`
	CompletedCourses int `json:"completed_courses"`
	ActiveCourses    int `json:"active_courses"`
	LockedCourses    int `json:"locked_courses"`
	OverallProgress  int `json:"overall_progress"`
}

type PathwayView struct {
	Name        string              `json:"name"`
	TotalStages int                 `json:"total_stages"`
	Courses     []*CourseWithStatus `json:"courses"`
	Stats       PathwayStats        `json:"stats"`
}

// PathwaySummary is one row of the public pathway listing.
type PathwaySummary struct {
	Name        string `json:"name"`
	CourseCount int    `json:"course_count"`
	TotalStages int    `json:"total_stages"`
}

type StudentCourseSummary struct {
	CourseID             uuid.UUID `json:"course_id"`
	CourseTitle          string    `json:"course_title"`
	Stage                int       `json:"stage"`
	Status               string    `json:"status"`
	CompletionPercentage int       `json:"completion_percentage"`
	PointsEarned         int       `json:"points_earned"`
}

// StudentPathwaySummary groups everything a student has touched in one pathway.
// It reports engagement only; lock state is not part of this view.
type StudentPathwaySummary struct {
	PathwayName     string                  `json:"pathway_name"`
	TotalStages     int                     `json:"total_stages"`
	Courses         []*StudentCourseSummary `json:"courses"`
	CompletedCount  int                     `json:"completed_count"`
	InProgressCount int                     `json:"in_progress_count"`
	TotalPoints     int                     `json:"total_points"`
}
