package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/redis"
	"context"
	log "log/slog"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const (
	healthSnapshotTTL = 5 * time.Minute
	probeTimeout      = 5 * time.Second
)

// 健康检查组件
const (
	ComponentDatabase      = "database"
	ComponentStorage       = "storage"
	ComponentAI            = "ai"
	ComponentCache         = "cache"
	ComponentSearch        = "search"
	ComponentQueue         = "queue"
	ComponentNotifications = "notifications"
)

// Probe 单个组件的轻量探测
type Probe func(ctx context.Context) bool

type HealthService interface {
	Snapshot(ctx context.Context) *dto.HealthDTO
	Refresh(ctx context.Context) *dto.HealthDTO
	Components() []string
}

type healthServiceImpl struct {
	probes map[string]Probe
	media  MediaGateway
}

func NewHealthService(probes map[string]Probe, media MediaGateway) HealthService {
	return &healthServiceImpl{
		probes: probes,
		media:  media,
	}
}

// Snapshot 优先读取定时任务写入的快照，缺失时实时探测
func (s *healthServiceImpl) Snapshot(ctx context.Context) *dto.HealthDTO {
	if redis.Rdb != nil {
		raw, err := redis.GetValue(ctx, consts.HealthSnapshotKey)
		if err != nil {
			log.WarnContext(ctx, "read health snapshot failed", "err", err)
		} else if raw != "" {
			var snapshot dto.HealthDTO
			if err = json.Unmarshal([]byte(raw), &snapshot); err == nil {
				return &snapshot
			}
		}
	}
	return s.Refresh(ctx)
}

// Refresh 并发探测所有组件并写入快照
func (s *healthServiceImpl) Refresh(ctx context.Context) *dto.HealthDTO {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	components := make(map[string]bool, len(s.probes)+1)
	var mediaHealth map[string]bool
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for name, probe := range s.probes {
		g.Go(func() error {
			ok := probe(gctx)
			mu.Lock()
			components[name] = ok
			mu.Unlock()
			return nil
		})
	}
	if s.media != nil {
		g.Go(func() error {
			mediaHealth = s.media.HealthCheck(gctx)
			return nil
		})
	}
	_ = g.Wait()

	if mediaHealth == nil {
		mediaHealth = map[string]bool{}
	}
	components[ComponentStorage] = anyHealthy(mediaHealth)

	healthy := true
	for _, ok := range components {
		healthy = healthy && ok
	}
	snapshot := &dto.HealthDTO{
		Healthy:    healthy,
		Components: components,
		Media:      mediaHealth,
		CheckedAt:  time.Now().UTC(),
	}

	if redis.Rdb != nil {
		if raw, err := json.Marshal(snapshot); err == nil {
			if err = redis.SetWithExpiration(context.WithoutCancel(ctx), consts.HealthSnapshotKey, raw, healthSnapshotTTL); err != nil {
				log.WarnContext(ctx, "save health snapshot failed", "err", err)
			}
		}
	}
	return snapshot
}

// Components 已注册的组件名 (含存储)
func (s *healthServiceImpl) Components() []string {
	names := make([]string, 0, len(s.probes)+1)
	for name := range s.probes {
		names = append(names, name)
	}
	names = append(names, ComponentStorage)
	sort.Strings(names)
	return names
}

func anyHealthy(m map[string]bool) bool {
	for _, ok := range m {
		if ok {
			return true
		}
	}
	return false
}
