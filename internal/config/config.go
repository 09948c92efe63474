package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	MinIO    MinIOConfig
	YouTube  YouTubeConfig
	OpenAI   OpenAIConfig
	Ingest   IngestConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type AuthConfig struct {
	JWTSecret     string        `envconfig:"AUTH_JWT_SECRET" default:"change-me"`
	TokenTTL      time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	AdminUser     string        `envconfig:"AUTH_ADMIN_USER" default:"admin"`
	AdminPassword string        `envconfig:"AUTH_ADMIN_PASSWORD" default:"admin"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"tubedigest"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"tubedigest"`
	DBName   string `envconfig:"POSTGRES_DB" default:"tubedigest"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RabbitMQConfig struct {
	Host     string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port     int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User     string `envconfig:"RABBITMQ_USER" default:"tubedigest"`
	Password string `envconfig:"RABBITMQ_PASSWORD" default:"tubedigest"`
	VHost    string `envconfig:"RABBITMQ_VHOST" default:"/"`
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

type MinIOConfig struct {
	Endpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	AccessKey string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	SecretKey string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	Bucket    string `envconfig:"MINIO_BUCKET" default:"transcripts"`
	UseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

type YouTubeConfig struct {
	APIKey string `envconfig:"YOUTUBE_API_KEY" default:""`
}

type OpenAIConfig struct {
	APIKey string `envconfig:"OPENAI_API_KEY" default:""`
	Model  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
}

type IngestConfig struct {
	CronSpec         string        `envconfig:"INGEST_CRON_SPEC" default:"@every 6h"`
	RunOnStartup     bool          `envconfig:"INGEST_RUN_ON_STARTUP" default:"true"`
	DefaultCategory  string        `envconfig:"INGEST_DEFAULT_CATEGORY" default:"main"`
	Lookback         time.Duration `envconfig:"INGEST_LOOKBACK" default:"24h"`
	CallTimeout      time.Duration `envconfig:"INGEST_CALL_TIMEOUT" default:"60s"`
	SubmissionJobTTL time.Duration `envconfig:"INGEST_SUBMISSION_JOB_TTL" default:"1h"`
	ShutdownTimeout  time.Duration `envconfig:"WORKER_SHUTDOWN_TIMEOUT" default:"30s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
