package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port      string
	DBDSN     string
	LogFile   string
	JWTSecret string
	JWTTTL    time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "shopcart.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./shopcart.log"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-change-me"
		log.Println("[config] JWT_SECRET not set; using insecure dev default")
	}
	ttl := 60 * time.Minute
	if v := os.Getenv("JWT_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = time.Duration(n) * time.Minute
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, JWTSecret: secret, JWTTTL: ttl}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s JWT_TTL=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.JWTTTL)
	return cfg
}
