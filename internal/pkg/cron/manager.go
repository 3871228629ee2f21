package cron

import (
	"CommandCenter/internal/api/config"
	"CommandCenter/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	cfg               config.JobsConfig
	healthSnapshotJob *job.HealthSnapshotJob
	staleReviewJob    *job.StaleReviewJob
}

func NewCronManager(cfg config.JobsConfig, healthSnapshotJob *job.HealthSnapshotJob, staleReviewJob *job.StaleReviewJob) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds()),
		cfg:               cfg,
		healthSnapshotJob: healthSnapshotJob,
		staleReviewJob:    staleReviewJob,
	}
}

// RegisterJobs 注册定时任务，表达式为空的任务不启用
func (s *Manager) RegisterJobs() error {
	jobs := []struct {
		name string
		spec string
		job  cron.Job
	}{
		{"health_snapshot", s.cfg.HealthSnapshot, s.healthSnapshotJob},
		{"stale_review", s.cfg.StaleReview, s.staleReviewJob},
	}
	for _, j := range jobs {
		if j.spec == "" {
			log.Info("Cron 任务未启用", "job", j.name)
			continue
		}
		if _, err := s.engine.AddJob(j.spec, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(j.job)); err != nil {
			return err
		}
		log.Info("Cron 任务已注册", "job", j.name, "spec", j.spec)
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

// InitCron 注册并启动所有定时任务
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	return nil
}
