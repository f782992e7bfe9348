package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/petfolk/petcare/config"
	"github.com/petfolk/petcare/internal/email"
	"github.com/petfolk/petcare/internal/kafka"
	"github.com/petfolk/petcare/internal/logger"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, zlog)
	defer consumer.Close()

	sender := email.NewSender(zlog)

	zlog.Info("worker consuming order events", zap.String("topic", cfg.Kafka.NotificationsTopic))
	err = consumer.Consume(ctx, func(ctx context.Context, event kafka.OrderEvent) error {
		return sender.Send(ctx, event)
	})
	if err != nil && ctx.Err() == nil {
		zlog.Fatal("consumer stopped", zap.Error(err))
	}
}
