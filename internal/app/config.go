package app

import (
	"strings"
	"time"

	"github.com/yungbote/pathways-backend/internal/pkg/logger"
	"github.com/yungbote/pathways-backend/internal/utils"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration

	AllowedOrigins []string

	MetricsAddr string
	RedisAddr   string

	Environment string
	Version     string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)

	var origins []string
	if raw := utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log); raw != "" {
		origins = strings.Split(raw, ",")
	}

	return Config{
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		AllowedOrigins: origins,
		MetricsAddr:    utils.GetEnv("METRICS_ADDR", ":9091", log),
		RedisAddr:      utils.GetEnv("REDIS_ADDR", "", log),
		Environment:    utils.GetEnv("APP_ENV", "development", log),
		Version:        utils.GetEnv("APP_VERSION", "dev", log),
	}
}
