package config

import (
	"errors"
	"fmt"
	log "log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// envBindings 与部署平台保持一致的环境变量名
var envBindings = map[string]string{
	"database.dsn":                    "DATABASE_URL",
	"auth.jwt_secret":                 "JWT_SECRET",
	"llm.api_key":                     "OPENAI_API_KEY",
	"media.supabase.url":              "SUPABASE_URL",
	"media.supabase.service_role_key": "SUPABASE_SERVICE_ROLE_KEY",
	"media.supabase.bucket":           "SUPABASE_BUCKET",
	"media.cloudinary.cloud_name":     "CLOUDINARY_CLOUD_NAME",
	"media.cloudinary.api_key":        "CLOUDINARY_API_KEY",
	"media.cloudinary.api_secret":     "CLOUDINARY_API_SECRET",
	"media.cloudinary.folder":         "CLOUDINARY_FOLDER",
	"media.imgix.domain":              "IMGIX_DOMAIN",
	"media.imgix.api_key":             "IMGIX_API_KEY",
	"media.imgix.secure_url_token":    "IMGIX_SECURE_URL_TOKEN",
	"media.imgix.source.endpoint":     "IMGIX_SOURCE_ENDPOINT",
	"media.imgix.source.access_key":   "IMGIX_SOURCE_ACCESS_KEY",
	"media.imgix.source.secret_key":   "IMGIX_SOURCE_SECRET_KEY",
	"media.imgix.source.bucket":       "IMGIX_SOURCE_BUCKET",
	"media.default_provider":          "MEDIA_DEFAULT_PROVIDER",
	"redis.addr":                      "REDIS_ADDR",
	"mongo.url":                       "MONGO_URL",
	"elastic.address":                 "ELASTIC_ADDRESS",
	"logstash.address":                "LOGSTASH_ADDRESS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.lead_rate_limit", 10)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("mongo.database", "command_center")
	v.SetDefault("elastic.indices.lead_index", "leads")
	v.SetDefault("kafka.topics.lead_events", "command-center.leads")
	v.SetDefault("kafka.topics.artifact_events", "command-center.artifacts")
	v.SetDefault("kafka.topics.media_events", "command-center.media")
	v.SetDefault("kafka_lead_consumer.topic", "command-center.leads")
	v.SetDefault("kafka_lead_consumer.group_id", "command-center-lead-worker")
	v.SetDefault("kafka.consumer.session_timeout", 10)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka.consumer.max_processing_time", 30)
	v.SetDefault("llm.text_model", "gpt-4o-mini")
	v.SetDefault("llm.temperature", 0.4)
	v.SetDefault("llm.concurrency", 5)
	v.SetDefault("auth.issuer", "command-center")
	v.SetDefault("auth.expire_hours", 24)
	v.SetDefault("media.supabase.bucket", "media")
	v.SetDefault("media.cloudinary.folder", "command-center")
	v.SetDefault("sources.timeout", 15)
	v.SetDefault("sources.max_chars", 3000)
	v.SetDefault("sources.max_sources", 5)
	v.SetDefault("logstash.index", "logstash-command-center")
	v.SetDefault("jobs.health_snapshot", "0 */1 * * * *")
	v.SetDefault("jobs.stale_review", "0 0 */1 * * *")
	v.SetDefault("jobs.stale_review_hours", 48)
}

// LoadConfig 从文件与环境变量加载配置并填充到 Cfg，path 为空时读取 ./configs/config.yaml
func LoadConfig(path string) error {
	// .env 仅用于本地开发，缺失不报错
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded environment from .env")
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
	}
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		log.Warn("Config file not found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg
	return nil
}
