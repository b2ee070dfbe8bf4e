package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	MinIO    MinIOConfig
	JWT      JWTConfig
	Workflow WorkflowConfig
	RBAC     RBACConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxRetries  int
	AutoMigrate bool
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
	PollInterval  time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type JWTConfig struct {
	Secret string
}

type WorkflowConfig struct {
	BulkConcurrency int
	BulkMaxItems    int
	StatsCacheTTL   time.Duration
	IdempotencyTTL  time.Duration
}

type RBACConfig struct {
	ModelPath string
}

// Load reads configuration from the environment. Call godotenv.Load before
// Load when a .env file should be honoured.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			ReadTimeout:  v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:  v.GetDuration("HTTP_IDLE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			MaxRetries:  v.GetInt("DB_MAX_RETRIES"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{Addr: v.GetString("REDIS_ADDR")},
		Kafka: KafkaConfig{
			Broker:        v.GetString("KAFKA_BROKER"),
			ConsumerGroup: v.GetString("KAFKA_CONSUMER_GROUP"),
			PollInterval:  v.GetDuration("OUTBOX_POLL_INTERVAL"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
		JWT: JWTConfig{Secret: v.GetString("JWT_SECRET")},
		Workflow: WorkflowConfig{
			BulkConcurrency: v.GetInt("BULK_CONCURRENCY"),
			BulkMaxItems:    v.GetInt("BULK_MAX_ITEMS"),
			StatsCacheTTL:   v.GetDuration("STATS_CACHE_TTL"),
			IdempotencyTTL:  v.GetDuration("IDEMPOTENCY_TTL"),
		},
		RBAC: RBACConfig{
			ModelPath: v.GetString("RBAC_MODEL_PATH"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("HTTP_READ_TIMEOUT", 5*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 10*time.Second)
	v.SetDefault("HTTP_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_RETRIES", 5)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "go-jobmarket-stats")
	v.SetDefault("OUTBOX_POLL_INTERVAL", 3*time.Second)
	v.SetDefault("MINIO_BUCKET", "mou-documents")
	v.SetDefault("BULK_CONCURRENCY", 4)
	v.SetDefault("BULK_MAX_ITEMS", 200)
	v.SetDefault("STATS_CACHE_TTL", time.Minute)
	v.SetDefault("IDEMPOTENCY_TTL", 24*time.Hour)
	v.SetDefault("RBAC_MODEL_PATH", "internal/rbac/infra/model.conf")
}

func (c *Config) validate() error {
	if c.Workflow.BulkConcurrency < 1 {
		return fmt.Errorf("BULK_CONCURRENCY must be >= 1, got %d", c.Workflow.BulkConcurrency)
	}
	if c.Workflow.BulkMaxItems < 1 {
		return fmt.Errorf("BULK_MAX_ITEMS must be >= 1, got %d", c.Workflow.BulkMaxItems)
	}
	return nil
}
