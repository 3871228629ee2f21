package config

// Config 配置主体
type Config struct {
	Server            ServerConfig        `mapstructure:"server"`
	DB                DBConfig            `mapstructure:"database"`
	Redis             RedisConfig         `mapstructure:"redis"`
	Mongo             MongoConfig         `mapstructure:"mongo"`
	Elastic           ElasticConfig       `mapstructure:"elastic"`
	Kafka             KafkaConfig         `mapstructure:"kafka"`
	KafkaLeadConsumer KafkaConsumerConfig `mapstructure:"kafka_lead_consumer"`
	LLM               LLMConfig           `mapstructure:"llm"`
	Auth              AuthConfig          `mapstructure:"auth"`
	Media             MediaConfig         `mapstructure:"media"`
	Sources           SourcesConfig       `mapstructure:"sources"`
	Logstash          LogstashConfig      `mapstructure:"logstash"`
	Jobs              JobsConfig          `mapstructure:"jobs"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port          int      `mapstructure:"port"`
	AllowOrigins  []string `mapstructure:"allow_origins"`
	LeadRateLimit int      `mapstructure:"lead_rate_limit"` // 每个 IP 每分钟允许的线索提交次数
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver      string `mapstructure:"driver"` // postgres | mysql
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	LeadIndex string `mapstructure:"lead_index"`
}

type KafkaConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
	Topics   KafkaTopics    `mapstructure:"topics"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// KafkaTopics 领域事件 topic
type KafkaTopics struct {
	LeadEvents     string `mapstructure:"lead_events"`
	ArtifactEvents string `mapstructure:"artifact_events"`
	MediaEvents    string `mapstructure:"media_events"`
}

type KafkaConsumerConfig struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type LLMConfig struct {
	URL         string           `mapstructure:"url"`
	TextModel   string           `mapstructure:"text_model"`
	ApiKey      string           `mapstructure:"api_key"`
	Temperature float64          `mapstructure:"temperature"`
	Concurrency int64            `mapstructure:"concurrency"`
	PromptsPath PromptPathConfig `mapstructure:"prompts_path"`
}

type PromptPathConfig struct {
	Outline string `mapstructure:"outline"`
	Facts   string `mapstructure:"facts"`
	Content string `mapstructure:"content"`
	SEO     string `mapstructure:"seo"`
	Summary string `mapstructure:"summary"`
}

// AuthConfig 身份提供方 (Supabase Auth) 的 JWT 配置
type AuthConfig struct {
	JWTSecret   string `mapstructure:"jwt_secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// MediaConfig 媒体存储配置，未配置的 provider 不会注册
type MediaConfig struct {
	DefaultProvider string           `mapstructure:"default_provider"`
	Supabase        SupabaseConfig   `mapstructure:"supabase"`
	Cloudinary      CloudinaryConfig `mapstructure:"cloudinary"`
	Imgix           ImgixConfig      `mapstructure:"imgix"`
	Local           LocalMediaConfig `mapstructure:"local"`
}

type SupabaseConfig struct {
	URL            string `mapstructure:"url"`
	ServiceRoleKey string `mapstructure:"service_role_key"`
	Bucket         string `mapstructure:"bucket"`
}

type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Folder    string `mapstructure:"folder"`
}

type ImgixConfig struct {
	Domain         string      `mapstructure:"domain"`
	APIKey         string      `mapstructure:"api_key"`
	SecureURLToken string      `mapstructure:"secure_url_token"`
	Source         MinIOConfig `mapstructure:"source"`
}

// MinIOConfig imgix 源站 (S3 兼容) 配置
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type LocalMediaConfig struct {
	Root    string `mapstructure:"root"`
	BaseURL string `mapstructure:"base_url"`
}

// SourcesConfig 事实抽取时抓取外部资料的配置
type SourcesConfig struct {
	Timeout        int    `mapstructure:"timeout"`
	MaxChars       int    `mapstructure:"max_chars"`
	MaxSources     int    `mapstructure:"max_sources"`
	WebSearch      bool   `mapstructure:"web_search"`
	RenderFallback bool   `mapstructure:"render_fallback"`
	Proxy          string `mapstructure:"proxy"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// JobsConfig 定时任务表达式 (带秒)
type JobsConfig struct {
	HealthSnapshot   string `mapstructure:"health_snapshot"`
	StaleReview      string `mapstructure:"stale_review"`
	StaleReviewHours int    `mapstructure:"stale_review_hours"`
}
