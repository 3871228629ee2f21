package job

import (
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/logger"
	"CommandCenter/internal/pkg/mongo"
	"CommandCenter/internal/pkg/redis"
	"CommandCenter/internal/repository"
	"CommandCenter/internal/service"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	staleReviewLockTTL     = 5 * time.Minute
	staleReviewNotifyTTL   = 7 * 24 * time.Hour
	defaultStaleReviewHour = 48
)

// StaleReviewJob 提醒管理员处理积压的待审核产出物，每个产出物只提醒一次
type StaleReviewJob struct {
	artifactRepo repository.ArtifactRepo
	notifier     service.NotificationService
	threshold    time.Duration
}

func NewStaleReviewJob(artifactRepo repository.ArtifactRepo, notifier service.NotificationService, hours int) *StaleReviewJob {
	if hours <= 0 {
		hours = defaultStaleReviewHour
	}
	return &StaleReviewJob{
		artifactRepo: artifactRepo,
		notifier:     notifier,
		threshold:    time.Duration(hours) * time.Hour,
	}
}

func (s *StaleReviewJob) Run() {
	traceID := "job-review-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	ok, err := redis.TryLock(ctx, consts.StaleReviewLock, traceID, staleReviewLockTTL, 0)
	if err != nil {
		log.ErrorContext(ctx, "acquire stale review lock failed", "err", err)
		return
	}
	if !ok {
		return
	}
	defer redis.UnLock(ctx, consts.StaleReviewLock, traceID)

	if _, err = s.notifyStale(ctx, time.Now()); err != nil {
		log.ErrorContext(ctx, "stale review job failed", "err", err)
	}
}

// notifyStale 返回本次新发出的提醒数
func (s *StaleReviewJob) notifyStale(ctx context.Context, now time.Time) (int, error) {
	artifacts, err := s.artifactRepo.ListStalePending(ctx, now.Add(-s.threshold))
	if err != nil {
		return 0, err
	}

	hours := int(s.threshold.Hours())
	sent := 0
	for _, a := range artifacts {
		first, err := redis.SetNX(ctx, consts.StaleReviewNotifyKey+a.ID, now.Unix(), staleReviewNotifyTTL)
		if err != nil {
			return sent, err
		}
		if !first {
			continue
		}

		content := fmt.Sprintf("%s pending review for more than %dh: %s", a.Type, hours, a.Title)
		payload := map[string]any{
			"type":      a.Type,
			"userId":    a.UserID,
			"createdAt": a.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err = s.notifier.NotifyAdmins(ctx, mongo.SysBoxTypeReview, a.ID, content, payload); err != nil {
			_ = redis.DeleteKey(ctx, consts.StaleReviewNotifyKey+a.ID)
			return sent, err
		}
		sent++
	}

	if sent > 0 {
		log.InfoContext(ctx, "stale review reminders sent", "count", sent, "pending", len(artifacts))
	}
	return sent, nil
}
