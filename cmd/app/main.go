package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/petfolk/petcare/api"
	"github.com/petfolk/petcare/config"
	"github.com/petfolk/petcare/internal/bootstrap"
	"github.com/petfolk/petcare/internal/cache"
	"github.com/petfolk/petcare/internal/draft"
	"github.com/petfolk/petcare/internal/kafka"
	"github.com/petfolk/petcare/internal/logger"
	"github.com/petfolk/petcare/internal/pricing"
	"github.com/petfolk/petcare/internal/repository"
	"github.com/petfolk/petcare/internal/service/carelog"
	"github.com/petfolk/petcare/internal/service/catalog"
	"github.com/petfolk/petcare/internal/service/member"
	"github.com/petfolk/petcare/internal/service/order"
	"github.com/petfolk/petcare/internal/service/pet"
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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.ServicesCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	memberRepo := repository.NewMemberRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	petRepo := repository.NewPetRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	careLogRepo := repository.NewCareLogRepository(pool)

	memberService := member.NewService(memberRepo)
	catalogService := catalog.NewService(catalogRepo, redisCache, zlog)
	petService := pet.NewService(petRepo)
	orderService := order.NewService(bookingRepo, producer, cfg.Kafka.OrderTopic, zlog,
		order.WithNotificationsTopic(cfg.Kafka.NotificationsTopic))
	careLogService := carelog.NewService(careLogRepo)

	tariff := pricing.NewTariff(cfg.Pricing.LodgingFeePerNight, cfg.Pricing.CareServiceIDs, cfg.Pricing.GroomingServiceIDs)
	draftManager := draft.NewManager(redisCache, catalogRepo, tariff, cfg.Pricing.DefaultBudget)

	err = bootstrap.Run(ctx, cfg, zlog,
		api.NewHealthHandler(pool),
		api.NewAuthHandler(memberService),
		api.NewCatalogHandler(catalogService),
		api.NewPetHandler(petService),
		api.NewOrderHandler(orderService),
		api.NewCareLogHandler(careLogService),
		api.NewDraftHandler(draftManager),
	)
	if err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
