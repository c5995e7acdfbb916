package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tencoupons/slot-service/internal/app/background"
	"github.com/tencoupons/slot-service/internal/config"
	deliveryhttp "github.com/tencoupons/slot-service/internal/delivery/http"
	"github.com/tencoupons/slot-service/internal/infrastructure/kafka"
	"github.com/tencoupons/slot-service/internal/infrastructure/logger"
	"github.com/tencoupons/slot-service/internal/infrastructure/metrics"
	"github.com/tencoupons/slot-service/internal/infrastructure/migrate"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/repository"
	"github.com/tencoupons/slot-service/internal/usecase/display"
	"github.com/tencoupons/slot-service/internal/usecase/slot"
	"github.com/tencoupons/slot-service/internal/usecase/timeframe"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.SlotDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.SlotDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v\n", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := kafka.NewDefaultKafkaPublisher(brokers)
	defer pub.Close()

	slotMetrics := metrics.NewSlotMetrics()
	frameEventLog := logger.NewPGFrameEventLogger(db)

	// Init slot repo
	slotRepo := repository.NewDefaultSlotRepository(db)
	// Init time frame repo
	frameRepo := repository.NewDefaultTimeFrameRepository(db)
	// Init coupon repo
	couponRepo, err := repository.NewDefaultCouponRepository(db)
	if err != nil {
		log.Fatalf("failed to init coupon repo: %v\n", err)
	}
	// Init flyer placement repo
	placementRepo := repository.NewDefaultFlyerPlacementRepository(db)
	// Init ownership checker
	owners := repository.NewDefaultOwnershipChecker(db)

	// Init slot usecase
	slotUsecase := slot.NewDefaultSlotUsecase(slotRepo, frameRepo, couponRepo, slotMetrics)
	// Init time frame usecase
	frameUsecase := timeframe.NewDefaultTimeFrameUsecase(slotRepo, frameRepo, frameEventLog, slotMetrics)
	// Init display usecase
	displayUsecase := display.NewDefaultDisplayUsecase(slotUsecase, frameUsecase, couponRepo, owners, pub, slotMetrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tasks := background.NewBackgroundTasks(slotUsecase, slotRepo, cfg.Autorenew)
	tasks.StartAll(ctx)

	router := deliveryhttp.NewRouter(slotUsecase, frameUsecase, displayUsecase, placementRepo)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server started on %s:%s\n", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to serve: %v\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v\n", err)
	}
	log.Println("server stopped")
}
