package config

import (
	"os"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds everything read from the environment at boot.
type Config struct {
	Port          string
	DBDriver      string // "sqlite" or "mysql"
	DBDSN         string
	TokenSecret   string
	SessionTTL    time.Duration
	ServerName    string
	DiscoveryPort int
}

func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8000"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBDSN:         getEnv("DB_DSN", "app.db"),
		TokenSecret:   getEnv("TOKEN_SECRET", "TestSecretKeyAUTH1945"),
		ServerName:    getEnv("SERVER_NAME", "smart-restaurant"),
		DiscoveryPort: getEnvInt("DISCOVERY_PORT", 37020),
	}

	ttl := getEnvInt("SESSION_TTL_SECONDS", 3600)
	cfg.SessionTTL = time.Duration(ttl) * time.Second

	return cfg
}

// InitDB opens the configured database. SQLite is the default so the server
// runs from a single file; MySQL is available for a shared deployment.
func InitDB(cfg Config) (*gorm.DB, error) {
	// TranslateError turns driver-specific constraint failures into
	// gorm.ErrDuplicatedKey so services can map them to Conflict.
	gormCfg := &gorm.Config{TranslateError: true}
	switch cfg.DBDriver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DBDSN), gormCfg)
	default:
		return gorm.Open(sqlite.Open(cfg.DBDSN), gormCfg)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
