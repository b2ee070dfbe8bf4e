package app

import (
	"context"
	"fmt"

	"go-jobmarket/internal/config"
	"go-jobmarket/internal/events"
	"go-jobmarket/internal/messaging/kafka/consumer"
	"go-jobmarket/internal/mou"
	"go-jobmarket/internal/shared/connection"
	"go-jobmarket/internal/stats"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer drops the dashboard stats cache for every committed transition
// until ctx is cancelled.
func RunConsumer(ctx context.Context, cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	statsService := stats.NewService(
		stats.NewRepository(gormDB),
		mou.NewChecker(mou.NewRepository(gormDB)),
		rdb,
		cfg.Workflow.StatsCacheTTL,
		logger,
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.WorkflowTransitionTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	consumer.ConsumeWorkflowTransitions(ctx, reader, statsService, logger)

	logger.Info("consumer shutting down")
	return nil
}
