package job

import (
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/logger"
	"CommandCenter/internal/pkg/redis"
	"CommandCenter/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const healthSnapshotLockTTL = 50 * time.Second

// HealthSnapshotJob 定时探测各组件并写入健康快照
type HealthSnapshotJob struct {
	health service.HealthService
}

func NewHealthSnapshotJob(health service.HealthService) *HealthSnapshotJob {
	return &HealthSnapshotJob{
		health: health,
	}
}

func (s *HealthSnapshotJob) Run() {
	traceID := "job-health-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 多实例部署时只需一个实例探测
	ok, err := redis.TryLock(ctx, consts.HealthSnapshotLock, traceID, healthSnapshotLockTTL, 0)
	if err != nil {
		log.ErrorContext(ctx, "acquire health snapshot lock failed", "err", err)
		return
	}
	if !ok {
		return
	}
	defer redis.UnLock(ctx, consts.HealthSnapshotLock, traceID)

	snapshot := s.health.Refresh(ctx)
	if snapshot.Healthy {
		return
	}

	var down []string
	for name, healthy := range snapshot.Components {
		if !healthy {
			down = append(down, name)
		}
	}
	log.WarnContext(ctx, "system degraded", "components", down, "media", snapshot.Media)
}
