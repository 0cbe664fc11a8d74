package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables.
//
//	ADDRESS                 HTTP bind address
//	DATABASE_URL            PostgreSQL DSN
//	JWT_SECRET              session token signing secret
//	TOKEN_VALIDITY_MINUTES  session token lifetime, minutes
//	INVITE_CODE             registration invite code
//	TIMEZONE                IANA zone for schedule evaluation
func parseEnv(cfg *Config) {
	if v := os.Getenv("ADDRESS"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("TOKEN_VALIDITY_MINUTES"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil && mins > 0 {
			cfg.TokenValidity = time.Duration(mins) * time.Minute
		}
	}
	if v := os.Getenv("INVITE_CODE"); v != "" {
		cfg.InviteCode = v
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
}
