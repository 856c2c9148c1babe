package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-jobradar-automation/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: Supabase connection pooler (PgBouncer in Transaction mode)
	// does not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// ---------------- SEARCH CONFIGURATIONS ----------------

// GetSearchConfigurations returns the configured listing URLs, optionally
// only the active ones, ordered stably so crawl order is reproducible.
func (r *Repository) GetSearchConfigurations(ctx context.Context, activeOnly bool) ([]models.SearchConfiguration, error) {
	query := `SELECT id, name, category, url, source, active FROM search_configurations`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get search configurations: %w", err)
	}
	defer rows.Close()

	var configs []models.SearchConfiguration
	for rows.Next() {
		var c models.SearchConfiguration
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.URL, &c.Source, &c.Active); err != nil {
			return nil, fmt.Errorf("failed to scan search configuration: %w", err)
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

// ---------------- JOB RECORDS ----------------

// GetExistingRecords returns the already-persisted records (id and platform
// only) for deduplication.
func (r *Repository) GetExistingRecords(ctx context.Context) ([]models.Record, error) {
	rows, err := r.db.Query(ctx, `SELECT external_id, platform FROM job_records`)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ID, &rec.Source.Platform); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// InsertRecords persists the batch one record at a time. A single failed
// insert is logged and skipped, never aborts the batch.
func (r *Repository) InsertRecords(ctx context.Context, records []models.Record) ([]models.Record, error) {
	query := `
		INSERT INTO job_records
			(external_id, platform, source_type, category, title, url, location,
			 published_at, scraped_at, organization_name, organization_url,
			 description, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (platform, external_id) DO NOTHING`

	inserted := make([]models.Record, 0, len(records))
	for _, rec := range records {
		details, err := json.Marshal(rec.Details)
		if err != nil {
			zap.S().Warnw("failed to marshal details, skipping record", "id", rec.ID, "err", err)
			continue
		}

		tag, err := r.db.Exec(ctx, query,
			rec.ID, rec.Source.Platform, rec.Source.Type, rec.Source.Category,
			rec.Title, rec.URL, rec.Location, rec.PublishedAt, rec.ScrapedAt,
			rec.Organization.Name, rec.Organization.URL, rec.Description, details,
		)
		if err != nil {
			zap.S().Warnw("failed to insert record, continuing batch", "id", rec.ID, "err", err)
			continue
		}
		if tag.RowsAffected() == 0 {
			//conflict: a concurrent run already stored this record
			continue
		}
		inserted = append(inserted, rec)
	}

	zap.S().Infow("💾 records persisted", "inserted", len(inserted), "batch", len(records))
	return inserted, nil
}
