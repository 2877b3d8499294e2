package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/unidesk/consult-scheduler/internal/calendar"
	"github.com/unidesk/consult-scheduler/internal/config"
	dbpkg "github.com/unidesk/consult-scheduler/internal/db"
	infraRepo "github.com/unidesk/consult-scheduler/internal/infra/repository"
	"github.com/unidesk/consult-scheduler/internal/jobs"
	"github.com/unidesk/consult-scheduler/internal/logger"
	"github.com/unidesk/consult-scheduler/internal/middleware"
	"github.com/unidesk/consult-scheduler/internal/notify"
	"github.com/unidesk/consult-scheduler/internal/queue"
	"github.com/unidesk/consult-scheduler/internal/routes"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	// infra singletons
	consultRepo := infraRepo.NewConsultationGormRepository(db)
	notifRepo := infraRepo.NewNotificationGormRepository(db)

	taskQueue := queue.NewRedisQueue(cfg.RedisAddr, cfg.RedisPassword, "consult:tasks")
	defer taskQueue.Close()

	dispatcher := notify.NewDispatcher(notifRepo, taskQueue, log)

	googleFactory := calendar.NewGoogleFactory(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleCalendarID,
		consultRepo,
	)
	synchronizer := calendar.NewSynchronizer(
		consultRepo,
		googleFactory.For,
		cfg.CampusTimezone,
		log,
	)

	// email delivery worker
	sender := notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	worker := notify.NewWorker(taskQueue, notifRepo, sender, cfg.SiteName, cfg.SiteURL, log)
	go worker.Run(ctx)

	// periodic jobs
	scheduler := jobs.NewScheduler(
		consultRepo,
		dispatcher,
		synchronizer,
		cfg.CampusTimezone,
		time.Duration(cfg.ReminderIntervalMinutes)*time.Minute,
		time.Duration(cfg.ReconcileIntervalMinutes)*time.Minute,
		log,
	)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:           db,
		Config:       cfg,
		Logger:       log,
		Dispatcher:   dispatcher,
		Synchronizer: synchronizer,
		Consults:     consultRepo,
		Notifs:       notifRepo,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
