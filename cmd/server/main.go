package main // Entry point package

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/wenqianzh/medpoint-backend/internal/booking"
	"github.com/wenqianzh/medpoint-backend/internal/config"
	"github.com/wenqianzh/medpoint-backend/internal/database"
	"github.com/wenqianzh/medpoint-backend/internal/handler"
	"github.com/wenqianzh/medpoint-backend/internal/logger"
	"github.com/wenqianzh/medpoint-backend/internal/notify"
	"github.com/wenqianzh/medpoint-backend/internal/queue"
	"github.com/wenqianzh/medpoint-backend/internal/repository"
	"github.com/wenqianzh/medpoint-backend/internal/router"
	queuepub "github.com/wenqianzh/medpoint-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, response cache and rate limiting disabled")
	}

	doctorRepo := repository.NewDoctorRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)

	engine := booking.NewEngine(db, doctorRepo, scheduleRepo, appointmentRepo, log)

	var publisher *queuepub.Publisher
	if cfg.AmqpURL != "" {
		publisher = queuepub.New(cfg.AmqpURL, log)
	}

	// The notification consumer only runs when a webhook is configured;
	// otherwise booked/cancelled events pile up in the broker (or are
	// never published at all when the broker is also absent).
	if cfg.WebhookURL != "" {
		bot, err := notify.NewWechatBot(cfg.WebhookURL)
		if err != nil {
			log.Fatal("webhook configuration invalid", zap.Error(err))
		}
		go queue.StartNotificationConsumer(ctx, cfg.AmqpURL, bot, log)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	router.RegisterRoutes(e, cfg, rdb, router.Handlers{
		Auth:          handler.NewAuthHandler(cfg),
		Doctor:        handler.NewDoctorHandler(doctorRepo),
		Schedule:      handler.NewScheduleHandler(scheduleRepo),
		Appointment:   handler.NewAppointmentHandler(engine, appointmentRepo, publisher, log),
		AdminDoctor:   handler.NewAdminDoctorHandler(doctorRepo),
		AdminSchedule: handler.NewAdminScheduleHandler(scheduleRepo),
	})

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	go func() {
		<-ctx.Done()
		_ = e.Shutdown(context.Background())
	}()
	if err := e.Start(addr); err != nil {
		log.Info("server stopped", zap.Error(err))
	}
}
