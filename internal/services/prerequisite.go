package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/pathways-backend/internal/pkg/logger"
	"github.com/yungbote/pathways-backend/internal/platform/apierr"
	"github.com/yungbote/pathways-backend/internal/repos"
	"github.com/yungbote/pathways-backend/internal/types"
)

// PrerequisiteService evaluates whether a student satisfies every prerequisite
// edge of a course. Resolution is a pure read: it has no persisted state and is
// recomputed from the current ledger rows on every call.
type PrerequisiteService interface {
	CheckCourse(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*types.UnlockCheck, error)
	Resolve(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, course *types.Course) (*types.UnlockCheck, error)
	ResolveWithProgress(course *types.Course, progressByCourse map[uuid.UUID]*types.CourseProgress, titles map[uuid.UUID]string) *types.UnlockCheck
}

type prerequisiteService struct {
	db           *gorm.DB
	log          *logger.Logger
	courseRepo   repos.CourseRepo
	progressRepo repos.CourseProgressRepo
}

func NewPrerequisiteService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	progressRepo repos.CourseProgressRepo,
) PrerequisiteService {
	serviceLog := baseLog.With("service", "PrerequisiteService")
	return &prerequisiteService{
		db:           db,
		log:          serviceLog,
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
	}
}

// CheckCourse resolves against a course looked up by id, failing with NotFound
// for unknown ids instead of answering the unlock question for a course that
// does not exist.
func (ps *prerequisiteService) CheckCourse(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*types.UnlockCheck, error) {
	transaction := tx
	if transaction == nil {
		transaction = ps.db
	}

	course, err := ps.courseRepo.GetByID(ctx, transaction, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", "Course not found")
	}
	return ps.Resolve(ctx, transaction, studentID, course)
}

func (ps *prerequisiteService) Resolve(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, course *types.Course) (*types.UnlockCheck, error) {
	if course == nil {
		return nil, fmt.Errorf("resolve prerequisites: course is nil")
	}
	if len(course.Prerequisites) == 0 {
		return &types.UnlockCheck{CanUnlock: true, UnmetPrerequisites: []types.UnmetPrerequisite{}}, nil
	}

	transaction := tx
	if transaction == nil {
		transaction = ps.db
	}

	requiredIDs := make([]uuid.UUID, 0, len(course.Prerequisites))
	for _, edge := range course.Prerequisites {
		requiredIDs = append(requiredIDs, edge.RequiresCourseID)
	}

	var progressRows []*types.CourseProgress
	if studentID != uuid.Nil {
		rows, err := ps.progressRepo.GetByUserAndCourseIDs(ctx, transaction, studentID, requiredIDs)
		if err != nil {
			return nil, fmt.Errorf("load prerequisite progress: %w", err)
		}
		progressRows = rows
	}
	progressByCourse := make(map[uuid.UUID]*types.CourseProgress, len(progressRows))
	for _, row := range progressRows {
		progressByCourse[row.CourseID] = row
	}

	requiredCourses, err := ps.courseRepo.GetByIDs(ctx, transaction, requiredIDs)
	if err != nil {
		return nil, fmt.Errorf("load prerequisite courses: %w", err)
	}
	titles := make(map[uuid.UUID]string, len(requiredCourses))
	for _, rc := range requiredCourses {
		titles[rc.ID] = rc.Title
	}

	return ps.ResolveWithProgress(course, progressByCourse, titles), nil
}

// ResolveWithProgress is the pure core of the resolver, shared with the pathway
// assembler which has already bulk-fetched the ledger rows and titles.
//
// Every edge is evaluated; there is no short-circuit, so the unmet list reports
// all failing edges in declared order. Only a ledger row with status exactly
// "completed" can satisfy an edge; an in-progress row does not count no matter
// its percentage. An edge whose required course is missing from titles is
// reported unmet with an empty title rather than skipped.
func (ps *prerequisiteService) ResolveWithProgress(course *types.Course, progressByCourse map[uuid.UUID]*types.CourseProgress, titles map[uuid.UUID]string) *types.UnlockCheck {
	unmet := []types.UnmetPrerequisite{}
	for _, edge := range course.Prerequisites {
		// Only a completed row counts as a candidate; an in-progress row is
		// the same as no row at all, including for the reported score.
		current := 0
		satisfied := false
		if row, ok := progressByCourse[edge.RequiresCourseID]; ok && row != nil && row.Status == types.ProgressStatusCompleted {
			current = row.CompletionPercentage
			satisfied = row.CompletionPercentage >= edge.MinimumScore
		}
		if satisfied {
			continue
		}
		unmet = append(unmet, types.UnmetPrerequisite{
			CourseID:     edge.RequiresCourseID,
			CourseTitle:  titles[edge.RequiresCourseID],
			MinimumScore: edge.MinimumScore,
			CurrentScore: current,
		})
	}
	return &types.UnlockCheck{
		CanUnlock:          len(unmet) == 0,
		UnmetPrerequisites: unmet,
	}
}
