package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/pathways-backend/internal/pkg/logger"
	"github.com/yungbote/pathways-backend/internal/types"
)

// CourseRepo is the course catalog collaborator. Prerequisite edges are always
// preloaded in declared order so callers never observe a partially loaded graph.
type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Course) ([]*types.Course, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Course, error)
	GetByPathwayName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Course, error)
	ListPathways(ctx context.Context, tx *gorm.DB) ([]*types.PathwaySummary, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	repoLog := baseLog.With("repo", "CourseRepo")
	return &courseRepo{db: db, log: repoLog}
}

func preloadPrerequisites(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Course) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Course{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil, nil
	}

	var result types.Course
	err := transaction.WithContext(ctx).
		Preload("Prerequisites", preloadPrerequisites).
		Where("id = ?", id).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *courseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Prerequisites", preloadPrerequisites).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) GetByPathwayName(ctx context.Context, tx *gorm.DB, name string) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if name == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Prerequisites", preloadPrerequisites).
		Where("pathway_name = ?", name).
		Order("pathway_stage ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) ListPathways(ctx context.Context, tx *gorm.DB) ([]*types.PathwaySummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	// In-database fold over the catalog grouped by pathway name. Courses with
	// incomplete pathway metadata do not belong to any pathway.
	var results []*types.PathwaySummary
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Select("pathway_name AS name, COUNT(*) AS course_count, MAX(pathway_total_stages) AS total_stages").
		Where("pathway_name <> '' AND pathway_stage > 0 AND pathway_total_stages > 0").
		Group("pathway_name").
		Order("pathway_name ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
