package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/pathways-backend/internal/pkg/logger"
	"github.com/yungbote/pathways-backend/internal/platform/apierr"
	"github.com/yungbote/pathways-backend/internal/repos"
	"github.com/yungbote/pathways-backend/internal/types"
)

// PathwayService assembles the per-student view of a pathway: the catalog
// courses in stage order, each decorated with the student's ledger row and the
// lock state derived by the prerequisite resolver.
type PathwayService interface {
	GetPathway(ctx context.Context, tx *gorm.DB, name string, studentID uuid.UUID) (*types.PathwayView, error)
	ListPathways(ctx context.Context, tx *gorm.DB) ([]*types.PathwaySummary, error)
}

type pathwayService struct {
	db           *gorm.DB
	log          *logger.Logger
	courseRepo   repos.CourseRepo
	progressRepo repos.CourseProgressRepo
	prereqs      PrerequisiteService
}

func NewPathwayService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	progressRepo repos.CourseProgressRepo,
	prereqs PrerequisiteService,
) PathwayService {
	serviceLog := baseLog.With("service", "PathwayService")
	return &pathwayService{
		db:           db,
		log:          serviceLog,
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
		prereqs:      prereqs,
	}
}

// GetPathway returns the assembled view, or apierr.NotFound when no course
// carries the pathway name. Pass uuid.Nil as studentID for anonymous callers:
// every user_progress is absent and any course with at least one prerequisite
// comes back locked.
func (s *pathwayService) GetPathway(ctx context.Context, tx *gorm.DB, name string, studentID uuid.UUID) (*types.PathwayView, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	fetched, err := s.courseRepo.GetByPathwayName(ctx, transaction, name)
	if err != nil {
		return nil, fmt.Errorf("load pathway courses: %w", err)
	}

	// A course with incomplete pathway metadata does not belong to the pathway.
	courses := make([]*types.Course, 0, len(fetched))
	for _, course := range fetched {
		if course.Pathway() == nil {
			continue
		}
		courses = append(courses, course)
	}
	if len(courses) == 0 {
		return nil, apierr.NotFound("pathway_not_found", "Pathway not found")
	}

	courseIDs := make([]uuid.UUID, 0, len(courses))
	inPathway := make(map[uuid.UUID]bool, len(courses))
	titles := make(map[uuid.UUID]string)
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
		inPathway[course.ID] = true
		titles[course.ID] = course.Title
	}

	// Prerequisite edges may point at courses outside this pathway; those still
	// need their titles for unmet reports and their ledger rows for gating.
	externalIDs := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)
	progressIDs := append([]uuid.UUID{}, courseIDs...)
	for _, course := range courses {
		for _, edge := range course.Prerequisites {
			if seen[edge.RequiresCourseID] || inPathway[edge.RequiresCourseID] {
				continue
			}
			seen[edge.RequiresCourseID] = true
			externalIDs = append(externalIDs, edge.RequiresCourseID)
			progressIDs = append(progressIDs, edge.RequiresCourseID)
		}
	}

	// The two remaining reads are independent of each other.
	var (
		progressRows    []*types.CourseProgress
		externalCourses []*types.Course
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if studentID == uuid.Nil {
			return nil
		}
		rows, err := s.progressRepo.GetByUserAndCourseIDs(gctx, transaction, studentID, progressIDs)
		if err != nil {
			return fmt.Errorf("load student progress: %w", err)
		}
		progressRows = rows
		return nil
	})
	g.Go(func() error {
		if len(externalIDs) == 0 {
			return nil
		}
		rows, err := s.courseRepo.GetByIDs(gctx, transaction, externalIDs)
		if err != nil {
			return fmt.Errorf("load prerequisite courses: %w", err)
		}
		externalCourses = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	progressByCourse := make(map[uuid.UUID]*types.CourseProgress, len(progressRows))
	for _, row := range progressRows {
		progressByCourse[row.CourseID] = row
	}
	for _, course := range externalCourses {
		titles[course.ID] = course.Title
	}

	decorated := make([]*types.CourseWithStatus, 0, len(courses))
	for _, course := range courses {
		check := s.prereqs.ResolveWithProgress(course, progressByCourse, titles)
		decorated = append(decorated, &types.CourseWithStatus{
			Course:           *course,
			UserProgress:     progressByCourse[course.ID],
			PrerequisitesMet: check.CanUnlock,
			IsLocked:         !check.CanUnlock,
		})
	}

	first := courses[0].Pathway()
	return &types.PathwayView{
		Name:        first.Name,
		TotalStages: first.TotalStages,
		Courses:     decorated,
		Stats:       AggregatePathwayStats(decorated),
	}, nil
}

func (s *pathwayService) ListPathways(ctx context.Context, tx *gorm.DB) ([]*types.PathwaySummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	summaries, err := s.courseRepo.ListPathways(ctx, transaction)
	if err != nil {
		return nil, fmt.Errorf("list pathways: %w", err)
	}
	return summaries, nil
}
