package config

import (
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Env      string
	HTTPPort string

	// DBDialect is "postgres" or "sqlite".
	DBDialect string
	DBDSN     string

	// RedisAddr empty disables the article cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func LoadConfig() *Config {
	return &Config{
		Env:           env("ENV", "dev"),
		HTTPPort:      env("HTTP_PORT", "4010"),
		DBDialect:     env("DB_DIALECT", "sqlite"),
		DBDSN:         env("DB_DSN", ".tmp/content.db"),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPassword: env("REDIS_PASSWORD", ""),
		RedisDB:       envInt("REDIS_DB", 0),
	}
}

// GetDb opens the configured database. TranslateError is on so unique
// constraint violations surface as gorm.ErrDuplicatedKey on every dialect.
func GetDb(cnf *Config) *gorm.DB {
	gormConfig := &gorm.Config{TranslateError: true}

	var db *gorm.DB
	var err error

	switch cnf.DBDialect {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cnf.DBDSN), gormConfig)
	default:
		if dir := filepath.Dir(cnf.DBDSN); dir != "." {
			if mkErr := os.MkdirAll(dir, os.ModePerm); mkErr != nil {
				logrus.Fatalf("error creating database directory %s: %v", dir, mkErr)
			}
		}
		db, err = gorm.Open(sqlite.Open(cnf.DBDSN), gormConfig)
	}

	if err != nil {
		logrus.Fatalf("error connecting to %s database: %v", cnf.DBDialect, err)
	}

	return db
}

func env(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}

	return n
}
