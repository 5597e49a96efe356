package services

import (
	"testing"

	"github.com/yungbote/pathways-backend/internal/types"
)

func statusCourse(status string, locked bool) *types.CourseWithStatus {
	cws := &types.CourseWithStatus{
		PrerequisitesMet: !locked,
		IsLocked:         locked,
	}
	if status != "" {
		cws.UserProgress = &types.CourseProgress{Status: status}
	}
	return cws
}

func TestAggregatePathwayStats(t *testing.T) {
	tests := []struct {
		name    string
		courses []*types.CourseWithStatus
		want    types.PathwayStats
	}{
		{
			name:    "empty list",
			courses: nil,
			want:    types.PathwayStats{},
		},
		{
			name: "all completed",
			courses: []*types.CourseWithStatus{
				statusCourse(types.ProgressStatusCompleted, false),
				statusCourse(types.ProgressStatusCompleted, false),
			},
			want: types.PathwayStats{TotalCourses: 2, CompletedCourses: 2, OverallProgress: 100},
		},
		{
			name: "mixed statuses and locks",
			courses: []*types.CourseWithStatus{
				statusCourse(types.ProgressStatusCompleted, false),
				statusCourse(types.ProgressStatusInProgress, false),
				statusCourse("", true),
				statusCourse(types.ProgressStatusNotStarted, true),
			},
			want: types.PathwayStats{
				TotalCourses:     4,
				CompletedCourses: 1,
				ActiveCourses:    1,
				LockedCourses:    2,
				OverallProgress:  25,
			},
		},
		{
			// A completed course can still be locked if a cross-pathway
			// prerequisite was added after completion; the axes are independent.
			name: "completed and locked counted on both axes",
			courses: []*types.CourseWithStatus{
				statusCourse(types.ProgressStatusCompleted, true),
			},
			want: types.PathwayStats{TotalCourses: 1, CompletedCourses: 1, LockedCourses: 1, OverallProgress: 100},
		},
		{
			name: "progress ratio rounds to nearest",
			courses: []*types.CourseWithStatus{
				statusCourse(types.ProgressStatusCompleted, false),
				statusCourse(types.ProgressStatusCompleted, false),
				statusCourse("", false),
			},
			want: types.PathwayStats{TotalCourses: 3, CompletedCourses: 2, OverallProgress: 67},
		},
		{
			name: "one of three rounds down",
			courses: []*types.CourseWithStatus{
				statusCourse(types.ProgressStatusCompleted, false),
				statusCourse("", false),
				statusCourse("", false),
			},
			want: types.PathwayStats{TotalCourses: 3, CompletedCourses: 1, OverallProgress: 33},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregatePathwayStats(tt.courses)
			if got != tt.want {
				t.Fatalf("AggregatePathwayStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
