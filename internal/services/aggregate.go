package services

import (
	"math"

	"github.com/yungbote/pathways-backend/internal/types"
)

// AggregatePathwayStats folds an assembled course list into roll-up counts.
//
// Completed/active/locked are independent axes counted over the same list, so
// their sum can exceed the total; only overall progress is a ratio.
func AggregatePathwayStats(courses []*types.CourseWithStatus) types.PathwayStats {
	stats := types.PathwayStats{TotalCourses: len(courses)}
	for _, course := range courses {
		if course == nil {
			continue
		}
		if course.UserProgress != nil {
			switch course.UserProgress.Status {
			case types.ProgressStatusCompleted:
				stats.CompletedCourses++
			case types.ProgressStatusInProgress:
				stats.ActiveCourses++
			}
		}
		if course.IsLocked {
			stats.LockedCourses++
		}
	}
	if stats.TotalCourses > 0 {
		stats.OverallProgress = int(math.Round(float64(stats.CompletedCourses) / float64(stats.TotalCourses) * 100))
	}
	return stats
}
