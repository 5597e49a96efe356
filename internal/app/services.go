package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/pathways-backend/internal/pkg/logger"
	"github.com/yungbote/pathways-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Prerequisite services.PrerequisiteService
	Pathway      services.PathwayService
	Progress     services.ProgressService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) Services {
	log.Info("Wiring services...")

	authService := services.NewAuthService(log, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	prerequisiteService := services.NewPrerequisiteService(db, log, repos.Course, repos.CourseProgress)
	pathwayService := services.NewPathwayService(db, log, repos.Course, repos.CourseProgress, prerequisiteService)
	progressService := services.NewProgressService(db, log, repos.Course, repos.CourseProgress)

	return Services{
		Auth:         authService,
		Prerequisite: prerequisiteService,
		Pathway:      pathwayService,
		Progress:     progressService,
	}
}
