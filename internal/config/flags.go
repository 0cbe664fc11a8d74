package config

import (
	"flag"
	"os"
	"time"
)

// parseFlags overlays selected Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-i string   registration invite code
//	-z string   IANA timezone for schedule evaluation
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "secret key")
	tokenMinutes := fs.Int("t", int(cfg.TokenValidity/time.Minute), "token validity, minutes")
	fs.StringVar(&cfg.InviteCode, "i", cfg.InviteCode, "registration invite code")
	fs.StringVar(&cfg.Timezone, "z", cfg.Timezone, "evaluation timezone")

	_ = fs.Parse(os.Args[1:])

	if *tokenMinutes > 0 {
		cfg.TokenValidity = time.Duration(*tokenMinutes) * time.Minute
	}
}
