package app

import (
	"github.com/advisorly/advisorly-backend/internal/platform/envutil"
)

type Config struct {
	Port         string
	LogMode      string
	JWTSecretKey string
}

func LoadConfig() Config {
	return Config{
		Port:         envutil.Str("PORT", "8080"),
		LogMode:      envutil.Str("LOG_MODE", "development"),
		JWTSecretKey: envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
	}
}
