package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/pathways-backend/internal/pkg/logger"
	"github.com/yungbote/pathways-backend/internal/repos"
)

type Repos struct {
	Course         repos.CourseRepo
	CourseProgress repos.CourseProgressRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Course:         repos.NewCourseRepo(db, log),
		CourseProgress: repos.NewCourseProgressRepo(db, log),
	}
}
