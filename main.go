package main

import (
	"cinema_scheduler/cache"
	"cinema_scheduler/catalog"
	"cinema_scheduler/config"
	"cinema_scheduler/database"
	"cinema_scheduler/events"
	"cinema_scheduler/handler"
	"cinema_scheduler/helper"
	"cinema_scheduler/logger"
	"cinema_scheduler/router"
	"cinema_scheduler/service"
	"cinema_scheduler/store"
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func main() {
	settings := config.Load()

	zlog, err := logger.New(settings.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDB(settings, zlog)
	if err != nil {
		zlog.Fatal("database unavailable", zap.Error(err))
	}
	st := store.NewGormStore(db)
	if err := database.SeedAdmin(ctx, st, settings.AdminUsername, settings.AdminPassword, zlog); err != nil {
		zlog.Fatal("seed failed", zap.Error(err))
	}

	redisClient := cache.NewRedisClient(settings.RedisAddr, settings.RedisPassword)
	if redisClient == nil {
		zlog.Warn("redis unavailable, job locks are process local")
	}
	locker := cache.NewLocker(redisClient, zlog)

	var publisher events.Publisher = events.Nop{}
	if settings.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(settings.AMQPURL, zlog)
		if err != nil {
			zlog.Warn("rabbitmq unavailable, events are dropped", zap.Error(err))
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
		}
	}

	clock := clockwork.NewRealClock()
	opts := service.DefaultOptions()
	opts.ScheduleDays = settings.ScheduleDays
	opts.WindowMonths = settings.ScheduleWindowMonths
	opts.GracePeriod = settings.GracePeriod

	tmdb := catalog.NewTMDBClient(catalog.Config{
		BaseURL:  settings.TMDBBaseURL,
		APIKey:   settings.TMDBAPIKey,
		Language: settings.TMDBLanguage,
	}, zlog)

	scheduler := service.NewAutoScheduler(st, clock, publisher, zlog, opts, nil)
	importer := service.NewCatalogImporter(st, tmdb, clock, publisher, zlog)

	h := &handler.Handler{
		Store:     st,
		Sessions:  service.NewSessionService(st, clock, publisher, zlog),
		Movies:    service.NewMovieService(st, clock, publisher, zlog, opts),
		Theaters:  service.NewTheaterService(st, clock, publisher, zlog),
		Addresses: service.NewAddressService(st, clock, publisher, zlog),
		Scheduler: scheduler,
		Importer:  importer,
		Locker:    locker,
		Tokens:    helper.NewTokenIssuer(settings.JWTSecret, settings.JWTTTL),
		Log:       zlog,
	}

	dailyJob, _, err := helper.StartAutoScheduleJob(scheduler, locker, settings.AutoScheduleAt, clock, zlog)
	if err != nil {
		zlog.Fatal("auto schedule job", zap.Error(err))
	}
	importJob, err := helper.StartCatalogImportJob(importer, locker, settings.ImportCron, zlog)
	if err != nil {
		zlog.Fatal("catalog import job", zap.Error(err))
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		MaxAge:           600,
	}))
	router.SetupRoutes(app, h)

	go func() {
		if err := app.Listen(settings.HTTPAddr); err != nil {
			zlog.Error("http server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Warn("http shutdown", zap.Error(err))
	}
	if err := dailyJob.Shutdown(); err != nil {
		zlog.Warn("auto schedule job shutdown", zap.Error(err))
	}
	helper.StopCatalogImportJob(importJob)
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
