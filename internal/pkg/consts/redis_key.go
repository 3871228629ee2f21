package consts

const (
	TokenBlacklistKey    = "auth:blacklist:"
	UserSeenKey          = "user:seen:"
	DashboardOverviewKey = "dashboard:overview"
	HealthSnapshotKey    = "health:snapshot"
	LeadRateLimitKey     = "ratelimit:lead:"
	StaleReviewNotifyKey = "review:stale:notified:"
	EventChannel         = "command-center:events"
)

const (
	HealthSnapshotLock = "lock:health:snapshot"
	StaleReviewLock    = "lock:review:stale"
)
