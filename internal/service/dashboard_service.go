package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/model"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/redis"
	"CommandCenter/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardCacheTTL  = 30 * time.Second
	recentActivitySize = 10
)

type DashboardService interface {
	Overview(ctx context.Context) (*dto.DashboardDTO, error)
}

type dashboardServiceImpl struct {
	ideaRepo     repository.IdeaRepo
	artifactRepo repository.ArtifactRepo
	postRepo     repository.PostRepo
	leadRepo     repository.LeadRepo
	mediaRepo    repository.MediaRepo
	health       HealthService
}

func NewDashboardService(
	ideaRepo repository.IdeaRepo,
	artifactRepo repository.ArtifactRepo,
	postRepo repository.PostRepo,
	leadRepo repository.LeadRepo,
	mediaRepo repository.MediaRepo,
	health HealthService,
) DashboardService {
	return &dashboardServiceImpl{
		ideaRepo:     ideaRepo,
		artifactRepo: artifactRepo,
		postRepo:     postRepo,
		leadRepo:     leadRepo,
		mediaRepo:    mediaRepo,
		health:       health,
	}
}

// Overview 并发统计各项指标，结果缓存 30 秒
func (s *dashboardServiceImpl) Overview(ctx context.Context) (*dto.DashboardDTO, error) {
	if cached := s.cached(ctx); cached != nil {
		return cached, nil
	}

	var (
		metrics  dto.DashboardMetrics
		recent   []*model.AIArtifact
		snapshot *dto.HealthDTO
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		metrics.TotalIdeas, err = s.ideaRepo.CountIdeas(gctx)
		return err
	})
	g.Go(func() (err error) {
		metrics.PendingOutlines, err = s.artifactRepo.CountArtifacts(gctx, []model.ArtifactType{model.ArtifactOutline}, model.ArtifactPendingReview)
		return err
	})
	g.Go(func() (err error) {
		metrics.PendingFacts, err = s.artifactRepo.CountArtifacts(gctx, []model.ArtifactType{model.ArtifactFacts}, model.ArtifactPendingReview)
		return err
	})
	g.Go(func() (err error) {
		metrics.PublishedPosts, err = s.postRepo.CountPosts(gctx, model.PostPublished)
		return err
	})
	g.Go(func() (err error) {
		metrics.TotalLeads, err = s.leadRepo.CountLeads(gctx)
		return err
	})
	g.Go(func() (err error) {
		metrics.MediaFiles, err = s.mediaRepo.CountMedia(gctx)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.artifactRepo.ListArtifacts(gctx, repository.ArtifactFilter{Limit: recentActivitySize})
		return err
	})
	g.Go(func() error {
		snapshot = s.health.Snapshot(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	activity := make([]*dto.ActivityDTO, 0, len(recent))
	for _, a := range recent {
		activity = append(activity, &dto.ActivityDTO{
			ID:        a.ID,
			Type:      string(a.Type),
			Title:     a.Title,
			Status:    string(a.Status),
			CreatedAt: a.CreatedAt,
		})
	}

	overview := &dto.DashboardDTO{
		Metrics:        metrics,
		RecentActivity: activity,
		SystemHealth:   snapshot.Components,
		GeneratedAt:    time.Now().UTC(),
	}
	s.store(ctx, overview)
	return overview, nil
}

func (s *dashboardServiceImpl) cached(ctx context.Context) *dto.DashboardDTO {
	if redis.Rdb == nil {
		return nil
	}
	raw, err := redis.GetValue(ctx, consts.DashboardOverviewKey)
	if err != nil || raw == "" {
		return nil
	}
	var overview dto.DashboardDTO
	if err = json.Unmarshal([]byte(raw), &overview); err != nil {
		return nil
	}
	return &overview
}

func (s *dashboardServiceImpl) store(ctx context.Context, overview *dto.DashboardDTO) {
	if redis.Rdb == nil {
		return
	}
	raw, err := json.Marshal(overview)
	if err != nil {
		return
	}
	if err = redis.SetWithExpiration(ctx, consts.DashboardOverviewKey, raw, dashboardCacheTTL); err != nil {
		log.WarnContext(ctx, "cache dashboard overview failed", "err", err)
	}
}
