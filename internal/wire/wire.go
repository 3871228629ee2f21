package wire

import (
	"CommandCenter/internal/api"
	"CommandCenter/internal/api/config"
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/api/handler"
	"CommandCenter/internal/job"
	"CommandCenter/internal/pkg/cron"
	"CommandCenter/internal/pkg/database"
	"CommandCenter/internal/pkg/es"
	"CommandCenter/internal/pkg/kafka"
	"CommandCenter/internal/pkg/llm"
	"CommandCenter/internal/pkg/media"
	mongoRepo "CommandCenter/internal/pkg/mongo"
	"CommandCenter/internal/pkg/redis"
	"CommandCenter/internal/pkg/source"
	"CommandCenter/internal/repository"
	"CommandCenter/internal/service"
	"context"
	log "log/slog"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager // 未启用 kafka 时为 nil
	Producer     *kafka.Producer
	CronMgr      *cron.Manager
	Fetcher      *source.Fetcher
	Health       service.HealthService
}

// Close 释放非 HTTP 资源
func (a *ApplicationContainer) Close() {
	if a.Fetcher != nil {
		a.Fetcher.Close()
	}
	if a.Producer != nil {
		if err := a.Producer.Close(); err != nil {
			log.Error("Kafka producer close failed", "err", err)
		}
	}
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	// 基础设施
	mediaMgr, err := media.NewManagerFromConfig(&cfg.Media)
	if err != nil {
		return nil, err
	}

	model, err := llm.NewModel(&cfg.LLM)
	if err != nil {
		return nil, err
	}
	runner := llm.NewRunner(model, &cfg.LLM)
	fetcher := source.NewFetcher(&cfg.Sources)

	var producer *kafka.Producer
	var publisher service.EventPublisher
	if cfg.Kafka.Enable {
		producer, err = kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return nil, err
		}
		publisher = producer
	}
	events := service.NewEventBus(publisher, cfg.Kafka.Topics)

	// Repository
	userRepo := repository.NewUserRepo(db)
	ideaRepo := repository.NewIdeaRepo(db)
	artifactRepo := repository.NewArtifactRepo(db)
	postRepo := repository.NewPostRepository(db)
	leadRepo := repository.NewLeadRepo(db)
	mediaRepo := repository.NewMediaRepo(db)
	sysBoxRepo := mongoRepo.NewSysBoxRepo(mongoDB)

	var leadIndex es.LeadRepo
	if es.Client != nil {
		leadIndex = es.NewLeadRepo(es.Client)
	}

	// Service
	userService := service.NewUserService(userRepo)
	notificationService := service.NewNotificationService(sysBoxRepo, userService, events)
	generationService := service.NewGenerationService(runner, fetcher, ideaRepo, artifactRepo, postRepo, events)
	reviewService := service.NewReviewService(artifactRepo, events)
	postService := service.NewPostService(postRepo, ideaRepo, events)
	leadService := service.NewLeadService(leadRepo, leadIndex, notificationService, events)
	mediaService := service.NewMediaService(mediaMgr, mediaRepo, events)

	// 未启用 kafka 时线索事件在进程内处理
	events.Handle(dto.EventLeadCaptured, leadService.ProcessLeadEvent)
	events.Handle(dto.EventLeadUpdated, leadService.ProcessLeadEvent)

	probes := map[string]service.Probe{
		service.ComponentDatabase: func(ctx context.Context) bool {
			return database.Ping(ctx, db) == nil
		},
		service.ComponentAI: runner.Ping,
		service.ComponentCache: func(ctx context.Context) bool {
			return redis.Ping(ctx) == nil
		},
		service.ComponentSearch: es.Ping,
		service.ComponentQueue: func(ctx context.Context) bool {
			return !cfg.Kafka.Enable || producer != nil
		},
		service.ComponentNotifications: func(ctx context.Context) bool {
			return mongoRepo.Ping(ctx, mongoDB) == nil
		},
	}
	healthService := service.NewHealthService(probes, mediaMgr)
	dashboardService := service.NewDashboardService(ideaRepo, artifactRepo, postRepo, leadRepo, mediaRepo, healthService)

	// Handler
	handlers := &api.HandlersGroup{
		IdeaHandler:      handler.NewIdeaHandler(generationService),
		AIHandler:        handler.NewAIHandler(generationService, reviewService),
		MediaHandler:     handler.NewMediaHandler(mediaService),
		PostHandler:      handler.NewPostHandler(postService),
		LeadHandler:      handler.NewLeadHandler(leadService),
		DashboardHandler: handler.NewDashboardHandler(dashboardService, healthService),
		SysBoxHandler:    handler.NewSysBoxHandler(notificationService),
		WsHandler:        handler.NewWsHandler(cfg.Server.AllowOrigins),
		AuthHandler:      handler.NewAuthHandler(userService),
		Users:            userService,
	}
	if local, ok := mediaMgr.Local(); ok {
		handlers.LocalMedia = local.FileSystem()
	}

	router := api.SetupRouter(handlers)

	// 定时任务
	cronMgr := cron.NewCronManager(
		cfg.Jobs,
		job.NewHealthSnapshotJob(healthService),
		job.NewStaleReviewJob(artifactRepo, notificationService, cfg.Jobs.StaleReviewHours),
	)

	var kafkaMgr *kafka.ConsumerManager
	if cfg.Kafka.Enable {
		kafkaMgr, err = kafka.NewConsumerManager(cfg, leadService)
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		Producer:     producer,
		CronMgr:      cronMgr,
		Fetcher:      fetcher,
		Health:       healthService,
	}, nil
}
