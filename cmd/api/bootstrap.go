package main

import (
	"CommandCenter/internal/api/config"
	"CommandCenter/internal/pkg/database"
	"CommandCenter/internal/pkg/es"
	"CommandCenter/internal/pkg/mongo"
	"CommandCenter/internal/pkg/redis"
	"CommandCenter/internal/pkg/security"
	"CommandCenter/internal/wire"
	"fmt"
	log "log/slog"
)

// buildApp 建立所有外部连接并完成依赖注入
func buildApp(cfg *config.Config) (*wire.ApplicationContainer, error) {
	security.Init(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.ExpireHours)

	// 数据库连接
	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	// Redis 连接
	if err = redis.InitRedis(cfg.Redis); err != nil {
		return nil, fmt.Errorf("failed to create redis connection: %w", err)
	}

	// Mongo 连接
	mongoConn, err := mongo.InitMongo(cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo connection: %w", err)
	}

	// ElasticSearch 可选，不可用时关键字检索返回 503
	if cfg.Elastic.Address != "" {
		if err = es.InitClient(); err != nil {
			log.Warn("ElasticSearch unavailable, lead keyword search disabled", "err", err)
			es.Client = nil
		}
	}

	// 依赖注入
	app, err := wire.BuildApplication(db, mongoConn, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}
