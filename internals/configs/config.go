package configs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Port   string `env:"PORT" envDefault:"3000"`

	DBHost             string `env:"DB_HOST" envDefault:"localhost"`
	DBPort             string `env:"DB_PORT" envDefault:"5432"`
	DBUser             string `env:"DB_USER"`
	DBPassword         string `env:"DB_PASSWORD"`
	DBName             string `env:"DB_NAME"`
	DBSSLMode          string `env:"DB_SSLMODE" envDefault:"disable"`
	DBStatementTimeout int    `env:"DB_STATEMENT_TIMEOUT_MS" envDefault:"3000"`
	DBAutoMigrate      bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`

	JWTSecret        string        `env:"JWT_SECRET"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	JWTAccessTTL     time.Duration `env:"JWT_ACCESS_TTL" envDefault:"1h"`
	JWTRefreshTTL    time.Duration `env:"JWT_REFRESH_TTL" envDefault:"336h"`

	AdminAPIKey string   `env:"ADMIN_API_KEY"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogDev   bool   `env:"LOG_DEV" envDefault:"false"`

	RefreshCleanupCron string `env:"REFRESH_CLEANUP_CRON" envDefault:"@every 1h"`
}

// =======================
// ENV LOADER
// =======================

// Load reads .env (outside production) and parses the environment into Config.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			fmt.Println("⚠️ .env not found, using system environment")
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// CheckSecrets logs missing secrets without aborting startup.
func (c *Config) CheckSecrets(log *zap.Logger) {
	if c.JWTSecret == "" {
		log.Error("❌ JWT_SECRET is not set")
	}
	if c.JWTRefreshSecret == "" {
		log.Error("❌ JWT_REFRESH_SECRET is not set")
	}
	if c.AdminAPIKey == "" {
		log.Warn("ADMIN_API_KEY is not set, church admin routes are closed")
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=churchbook&options=-c%%20statement_timeout=%d",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode, c.DBStatementTimeout,
	)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// LOGGER
// =======================

func NewLogger(c *Config) (*zap.Logger, error) {
	var zc zap.Config
	if c.LogDev {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// =======================
// GORM LOGGER
// =======================

type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
	log           *zap.Logger
}

func NewGormLogger(log *zap.Logger) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
		log:           log.Named("gorm"),
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	n := *l
	n.LogLevel = level
	return &n
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.log.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.log.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.log.Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		// not-found is a normal outcome for First()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return
		}
		l.log.Error("[ERROR]", append(fields, zap.Error(err))...)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		l.log.Warn("[SLOW SQL]", fields...)
	case l.LogLevel >= gormLogger.Info:
		l.log.Debug("[QUERY]", fields...)
	}
}
