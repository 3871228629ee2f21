package cron

import (
	"CommandCenter/internal/api/config"
	"CommandCenter/internal/job"
	"testing"
)

func TestRegisterJobs(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.JobsConfig
		entries int
		wantErr bool
	}{
		{"both", config.JobsConfig{HealthSnapshot: "0 */1 * * * *", StaleReview: "0 0 */1 * * *"}, 2, false},
		{"disabled", config.JobsConfig{HealthSnapshot: "0 */1 * * * *"}, 1, false},
		{"invalid", config.JobsConfig{HealthSnapshot: "every minute"}, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mgr := NewCronManager(tc.cfg, job.NewHealthSnapshotJob(nil), job.NewStaleReviewJob(nil, nil, 48))
			err := mgr.RegisterJobs()
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got := len(mgr.engine.Entries()); got != tc.entries {
				t.Fatalf("entries = %d, want %d", got, tc.entries)
			}
		})
	}
}
