// Long-running mode: cron-scheduled crawls plus an HTTP manual trigger.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"go-jobradar-automation/internal/config"
	"go-jobradar-automation/internal/database"
	"go-jobradar-automation/internal/engine"
	"go-jobradar-automation/internal/logging"
	"go-jobradar-automation/internal/reporter"
	"go-jobradar-automation/internal/runner"
	"go-jobradar-automation/internal/scraper"
	"go-jobradar-automation/internal/scraper/glassdoor"
	"go-jobradar-automation/internal/scraper/linkedin"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	sync := logging.Init(cfg.Debug)
	defer sync()
	log := zap.S()

	repo, err := database.ConnectDB(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("❌ failed to connect to database", "err", err)
	}
	defer repo.Close()

	var notifier runner.Notifier
	if cfg.TelegramToken != "" {
		if tg, err := reporter.NewTelegramReporter(cfg); err != nil {
			log.Warnw("telegram reporter unavailable, continuing without it", "err", err)
		} else {
			notifier = tg
		}
	}

	eng := engine.New(cfg, []scraper.Strategy{
		linkedin.New(cfg),
		glassdoor.New(cfg),
	})
	run := runner.New(cfg, repo, eng, notifier)

	//one crawl at a time: a second trigger while one is active is rejected
	errBusy := errors.New("a crawl is already running")
	var running atomic.Bool
	runOnce := func(trigger string) (int, error) {
		if !running.CompareAndSwap(false, true) {
			return 0, errBusy
		}
		defer running.Store(false)

		log.Infow("▶️ crawl triggered", "trigger", trigger)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		inserted, err := run.RunOnce(ctx)
		if err != nil {
			return 0, err
		}
		return len(inserted), nil
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.CronSchedule, func() {
		if n, err := runOnce("cron"); err != nil {
			log.Errorw("scheduled crawl failed", "err", err)
		} else {
			log.Infow("scheduled crawl finished", "new_records", n)
		}
	}); err != nil {
		log.Fatalw("invalid cron schedule", "schedule", cfg.CronSchedule, "err", err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	log.Infow("⏰ scheduler started", "schedule", cfg.CronSchedule)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "JobRadar scraping engine is running!",
			"status":  "healthy",
		})
	})

	r.POST("/scrape/run", func(c *gin.Context) {
		n, err := runOnce("http")
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, errBusy) {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "new_records": n})
	})

	log.Infow("server listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalw("failed to start server", "err", err)
	}
}
