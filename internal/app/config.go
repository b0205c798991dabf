package app

import (
	"time"

	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/utils"
)

type Config struct {
	JWTSecretKey          string
	AccessTokenTTL        time.Duration
	RefreshTokenTTL       time.Duration
	CatalogCacheTTL       time.Duration
	ChatRequireEnrollment bool
	Port                  string
	AllowOrigins          string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	catalogCacheTTLSeconds := utils.GetEnvAsInt("CATALOG_CACHE_TTL", 60, log)
	chatRequireEnrollment := utils.GetEnvAsBool("CHAT_REQUIRE_ENROLLMENT", false, log)
	port := utils.GetEnv("PORT", "8080", log)
	allowOrigins := utils.GetEnv("ALLOW_ORIGINS", "", log)
	return Config{
		JWTSecretKey:          jwtSecretKey,
		AccessTokenTTL:        time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL:       time.Duration(refreshTokenTTLSeconds) * time.Second,
		CatalogCacheTTL:       time.Duration(catalogCacheTTLSeconds) * time.Second,
		ChatRequireEnrollment: chatRequireEnrollment,
		Port:                  port,
		AllowOrigins:          allowOrigins,
	}
}
