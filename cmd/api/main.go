package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	adapterHTTP "github.com/comitanigiacomo/kanso-weekly-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/bootstrap"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/config"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/workers"
)

// @title        Kanso Weekly Engine API
// @version      1.0
// @description  Daily task sequence, subtask rotation and completion history.
// @BasePath     /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: Invalid configuration: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Critical: Failed to initialise storage: %v", err)
	}
	defer app.Close()

	rolloverWorker := workers.NewRolloverWorker(app.Weekly)
	rolloverWorker.Start(ctx)
	rolloverWorker.Enqueue("startup")

	var scheduler *workers.Scheduler
	if cfg.RolloverCronEnabled {
		scheduler = workers.NewScheduler(app.Clock.Location())
		if _, err := scheduler.ScheduleRollover(cfg.RolloverTime, rolloverWorker); err != nil {
			log.Fatalf("Critical: Invalid ROLLOVER_TIME: %v", err)
		}
		scheduler.Start()
		log.Printf("[ROLLOVER] Scheduled daily at %s %s", cfg.RolloverTime, app.Clock.Location())
	}

	router := newRouter(app, startTime)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Weekly Engine running on http://localhost:%s (storage=%s)", cfg.Port, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	if scheduler != nil {
		scheduler.Stop()
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}

func newRouter(app *bootstrap.App, startTime time.Time) *gin.Engine {
	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		WeeklyHandler:  adapterHTTP.NewWeeklyHandler(app.Weekly),
		HistoryHandler: adapterHTTP.NewHistoryHandler(app.History),
		PoolHandler:    adapterHTTP.NewPoolHandler(app.Pool),
		AuthHandler:    adapterHTTP.NewAuthHandler(app.Auth),
		TokenValidator: app.Tokens,
		AuthEnabled:    app.Config.AuthEnabled,
		DB:             app.DB,
		Redis:          app.Redis,
		RateLimit:      app.Config.RateLimitPerMinute,
		StartTime:      startTime,
	})
}
