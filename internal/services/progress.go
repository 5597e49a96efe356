package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/pathways-backend/internal/pkg/logger"
	"github.com/yungbote/pathways-backend/internal/platform/apierr"
	"github.com/yungbote/pathways-backend/internal/repos"
	"github.com/yungbote/pathways-backend/internal/types"
)

// RecordProgressInput is the mutable slice of a ledger row a client may set.
type RecordProgressInput struct {
	Status               string `json:"status"`
	CompletionPercentage int    `json:"completion_percentage"`
	PointsEarned         int    `json:"points_earned"`
}

type ProgressService interface {
	StudentSummary(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.StudentPathwaySummary, error)
	RecordProgress(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID, input RecordProgressInput) (*types.CourseProgress, error)
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	courseRepo   repos.CourseRepo
	progressRepo repos.CourseProgressRepo
}

func NewProgressService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	progressRepo repos.CourseProgressRepo,
) ProgressService {
	serviceLog := baseLog.With("service", "ProgressService")
	return &progressService{
		db:           db,
		log:          serviceLog,
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
	}
}

// StudentSummary scans every ledger row of the student and groups them by
// pathway. Rows whose course has no complete pathway metadata are skipped, and
// lock state is deliberately not part of this view: it reports only what the
// student has already engaged with.
func (s *progressService) StudentSummary(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.StudentPathwaySummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	rows, err := s.progressRepo.GetByUserID(ctx, transaction, studentID)
	if err != nil {
		return nil, fmt.Errorf("load student progress: %w", err)
	}
	if len(rows) == 0 {
		return []*types.StudentPathwaySummary{}, nil
	}

	courseIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		courseIDs = append(courseIDs, row.CourseID)
	}
	courses, err := s.courseRepo.GetByIDs(ctx, transaction, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("load progressed courses: %w", err)
	}
	coursesByID := make(map[uuid.UUID]*types.Course, len(courses))
	for _, course := range courses {
		coursesByID[course.ID] = course
	}

	groups := make(map[string]*types.StudentPathwaySummary)
	for _, row := range rows {
		course := coursesByID[row.CourseID]
		if course == nil {
			continue
		}
		pathway := course.Pathway()
		if pathway == nil {
			continue
		}
		group := groups[pathway.Name]
		if group == nil {
			group = &types.StudentPathwaySummary{
				PathwayName: pathway.Name,
				TotalStages: pathway.TotalStages,
				Courses:     []*types.StudentCourseSummary{},
			}
			groups[pathway.Name] = group
		}
		group.Courses = append(group.Courses, &types.StudentCourseSummary{
			CourseID:             course.ID,
			CourseTitle:          course.Title,
			Stage:                pathway.Stage,
			Status:               row.Status,
			CompletionPercentage: row.CompletionPercentage,
			PointsEarned:         row.PointsEarned,
		})
		switch row.Status {
		case types.ProgressStatusCompleted:
			group.CompletedCount++
		case types.ProgressStatusInProgress:
			group.InProgressCount++
		}
		group.TotalPoints += row.PointsEarned
	}

	summaries := make([]*types.StudentPathwaySummary, 0, len(groups))
	for _, group := range groups {
		sort.Slice(group.Courses, func(i, j int) bool {
			return group.Courses[i].Stage < group.Courses[j].Stage
		})
		summaries = append(summaries, group)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].PathwayName < summaries[j].PathwayName
	})
	return summaries, nil
}

// RecordProgress upserts the student's ledger row for a course. completed_at is
// stamped on the transition into "completed" and cleared when the row leaves it.
func (s *progressService) RecordProgress(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID, input RecordProgressInput) (*types.CourseProgress, error) {
	if !types.ValidProgressStatus(input.Status) {
		return nil, apierr.New(400, "invalid_status", fmt.Errorf("invalid progress status %q", input.Status))
	}

	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	course, err := s.courseRepo.GetByID(ctx, transaction, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", "Course not found")
	}

	percentage := input.CompletionPercentage
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	points := input.PointsEarned
	if points < 0 {
		points = 0
	}

	row, err := s.progressRepo.GetByUserAndCourseID(ctx, transaction, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	now := time.Now()
	if row == nil {
		row = &types.CourseProgress{
			ID:       uuid.New(),
			UserID:   studentID,
			CourseID: courseID,
		}
	}
	row.Status = input.Status
	row.CompletionPercentage = percentage
	row.PointsEarned = points
	row.LastAccessedAt = &now
	switch {
	case input.Status == types.ProgressStatusCompleted && row.CompletedAt == nil:
		row.CompletedAt = &now
	case input.Status != types.ProgressStatusCompleted:
		row.CompletedAt = nil
	}

	if err := s.progressRepo.Upsert(ctx, transaction, row); err != nil {
		s.log.Error("RecordProgress failed", "error", err, "user_id", studentID, "course_id", courseID)
		return nil, fmt.Errorf("upsert progress: %w", err)
	}
	return row, nil
}
