package services

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/pathways-backend/internal/pkg/logger"
	"github.com/yungbote/pathways-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeCourseRepo struct {
	courses map[uuid.UUID]*types.Course
}

func newFakeCourseRepo(courses ...*types.Course) *fakeCourseRepo {
	m := make(map[uuid.UUID]*types.Course, len(courses))
	for _, c := range courses {
		m[c.ID] = c
	}
	return &fakeCourseRepo{courses: m}
}

func (r *fakeCourseRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Course) ([]*types.Course, error) {
	for _, row := range rows {
		r.courses[row.ID] = row
	}
	return rows, nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error) {
	return r.courses[id], nil
}

func (r *fakeCourseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Course, error) {
	var results []*types.Course
	for _, id := range ids {
		if c, ok := r.courses[id]; ok {
			results = append(results, c)
		}
	}
	return results, nil
}

func (r *fakeCourseRepo) GetByPathwayName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Course, error) {
	var results []*types.Course
	for _, c := range r.courses {
		if c.PathwayName == name {
			results = append(results, c)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].PathwayStage < results[j].PathwayStage
	})
	return results, nil
}

func (r *fakeCourseRepo) ListPathways(ctx context.Context, tx *gorm.DB) ([]*types.PathwaySummary, error) {
	byName := make(map[string]*types.PathwaySummary)
	for _, c := range r.courses {
		pathway := c.Pathway()
		if pathway == nil {
			continue
		}
		summary := byName[pathway.Name]
		if summary == nil {
			summary = &types.PathwaySummary{Name: pathway.Name}
			byName[pathway.Name] = summary
		}
		summary.CourseCount++
		if pathway.TotalStages > summary.TotalStages {
			summary.TotalStages = pathway.TotalStages
		}
	}
	var results []*types.PathwaySummary
	for _, summary := range byName {
		results = append(results, summary)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

type progressKey struct {
	userID   uuid.UUID
	courseID uuid.UUID
}

type fakeProgressRepo struct {
	rows map[progressKey]*types.CourseProgress
}

func newFakeProgressRepo(rows ...*types.CourseProgress) *fakeProgressRepo {
	m := make(map[progressKey]*types.CourseProgress, len(rows))
	for _, row := range rows {
		m[progressKey{row.UserID, row.CourseID}] = row
	}
	return &fakeProgressRepo{rows: m}
}

func (r *fakeProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.CourseProgress) ([]*types.CourseProgress, error) {
	for _, row := range rows {
		r.rows[progressKey{row.UserID, row.CourseID}] = row
	}
	return rows, nil
}

func (r *fakeProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CourseProgress, error) {
	var results []*types.CourseProgress
	for key, row := range r.rows {
		if key.userID == userID {
			results = append(results, row)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CourseID.String() < results[j].CourseID.String()
	})
	return results, nil
}

func (r *fakeProgressRepo) GetByUserAndCourseID(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.CourseProgress, error) {
	return r.rows[progressKey{userID, courseID}], nil
}

func (r *fakeProgressRepo) GetByUserAndCourseIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseIDs []uuid.UUID) ([]*types.CourseProgress, error) {
	var results []*types.CourseProgress
	for _, courseID := range courseIDs {
		if row, ok := r.rows[progressKey{userID, courseID}]; ok {
			results = append(results, row)
		}
	}
	return results, nil
}

func (r *fakeProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.CourseProgress) error {
	r.rows[progressKey{row.UserID, row.CourseID}] = row
	return nil
}

func pathwayCourse(title, pathway string, stage, totalStages int, prereqs ...*types.CoursePrerequisite) *types.Course {
	course := &types.Course{
		ID:                 uuid.New(),
		Title:              title,
		PathwayName:        pathway,
		PathwayStage:       stage,
		PathwayStageTitle:  title,
		PathwayTotalStages: totalStages,
		Prerequisites:      prereqs,
	}
	for _, p := range prereqs {
		p.CourseID = course.ID
	}
	return course
}

func prereqEdge(requires uuid.UUID, minimumScore, position int) *types.CoursePrerequisite {
	return &types.CoursePrerequisite{
		ID:               uuid.New(),
		RequiresCourseID: requires,
		MinimumScore:     minimumScore,
		Position:         position,
	}
}

func progressRow(userID, courseID uuid.UUID, status string, percentage, points int) *types.CourseProgress {
	return &types.CourseProgress{
		ID:                   uuid.New(),
		UserID:               userID,
		CourseID:             courseID,
		Status:               status,
		CompletionPercentage: percentage,
		PointsEarned:         points,
	}
}
