package database

import (
	"CommandCenter/internal/model"
	"context"
	log "log/slog"

	"gorm.io/gorm"
)

// Migrate 同步表结构
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&model.User{},
		&model.Idea{},
		&model.Post{},
		&model.AIArtifact{},
		&model.Media{},
		&model.Lead{},
	)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "Database schema migrated")
	return nil
}

// Ping 检查数据库连通性
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
