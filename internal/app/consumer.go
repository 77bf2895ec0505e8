package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"talenthub/internal/events"
	"talenthub/internal/messaging/kafka/consumer"
	"talenthub/internal/notification"
	"talenthub/internal/recruitment"
	"talenthub/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(notificationRepo)
	recruitmentRepo := recruitment.NewRepository(gormDB)

	goalReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.GoalProgressTopic,
		GroupID:        "talenthub-notifications-goal",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer goalReader.Close()

	recruitmentReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.RecruitmentPipelineTopic,
		GroupID:        "talenthub-notifications-recruitment",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer recruitmentReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeGoalProgress(ctx, goalReader, notificationService, logger)
	go consumer.ConsumeRecruitmentPipeline(ctx, recruitmentReader, notificationService, recruitmentRepo, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
