package database

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"churchbook_backend/internals/configs"
)

func ConnectDB(cfg *configs.Config, log *zap.Logger) (*gorm.DB, error) {
	log.Info("🔌 connecting to PostgreSQL", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger:                 configs.NewGormLogger(log),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}
	log.Info("✅ DB connected")
	return db, nil
}

func TunePool(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("pool tune err", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries(db *gorm.DB, log *zap.Logger) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(db); err != nil {
			log.Warn("warm-up ping err", zap.Error(err))
		}
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
