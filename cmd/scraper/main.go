// One-shot crawl: load config, run the full pipeline once, print a summary.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-jobradar-automation/internal/config"
	"go-jobradar-automation/internal/database"
	"go-jobradar-automation/internal/engine"
	"go-jobradar-automation/internal/logging"
	"go-jobradar-automation/internal/models"
	"go-jobradar-automation/internal/reporter"
	"go-jobradar-automation/internal/runner"
	"go-jobradar-automation/internal/scraper"
	"go-jobradar-automation/internal/scraper/glassdoor"
	"go-jobradar-automation/internal/scraper/linkedin"

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("❌ failed to connect to database", "err", err)
	}
	defer repo.Close()

	var notifier runner.Notifier
	if cfg.TelegramToken != "" {
		tg, err := reporter.NewTelegramReporter(cfg)
		if err != nil {
			log.Warnw("telegram reporter unavailable, continuing without it", "err", err)
		} else {
			notifier = tg
		}
	}

	eng := engine.New(cfg, []scraper.Strategy{
		linkedin.New(cfg),
		glassdoor.New(cfg),
	})

	inserted, err := runner.New(cfg, repo, eng, notifier).RunOnce(ctx)
	if err != nil {
		log.Fatalw("❌ crawl run failed", "err", err)
	}

	log.Infow("✅ run finished", "new_records", len(inserted))
	saveRunLog(inserted)
}

// saveRunLog dumps the run's new records to logs/ for quick inspection.
func saveRunLog(records []models.Record) {
	if len(records) == 0 {
		return
	}

	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		zap.S().Warnw("failed to create logs directory", "err", err)
		return
	}

	filename := fmt.Sprintf("crawl-%s.json", time.Now().Format("2006-01-02"))
	data, err := json.MarshalIndent(records, "", " ")
	if err != nil {
		zap.S().Warnw("failed to marshal records", "err", err)
		return
	}

	path := filepath.Join(logDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		zap.S().Warnw("failed to write run log", "err", err)
		return
	}
	zap.S().Infow("📁 results saved", "path", path)
}
