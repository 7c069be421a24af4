package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/marcelsud/webhook-courier/delivery"
)

/* PostgreSQL implementation of delivery.LogRepository
 * delivery_logs is append-mostly; reads are the status projections and the
 * metrics collector, plus the periodic bulk delete of the retention sweep
 */

type Repository struct {
	DB *sql.DB
}

// NewRepository creates a PostgreSQL repository with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig creates a PostgreSQL repository with a custom pool
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

// Append grava uma linha por tentativa executada
func (r *Repository) Append(ctx context.Context, log delivery.Log) error {
	query := `
		INSERT INTO delivery_logs (id, webhook_id, subscription_id, target_url, timestamp, attempt_number, outcome, status_code, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		log.ID,
		log.WebhookID,
		log.SubscriptionID,
		log.TargetURL,
		log.Timestamp,
		log.AttemptNumber,
		log.Outcome.String(),
		nullableInt(log.StatusCode),
		nullableString(log.Error),
	)
	if err != nil {
		return fmt.Errorf("inserting delivery log: %w", err)
	}

	return nil
}

// ListByWebhookID retorna as tentativas de um webhook, mais recentes primeiro
func (r *Repository) ListByWebhookID(ctx context.Context, webhookID string, limit int) ([]delivery.Log, error) {
	query := `
		SELECT id, webhook_id, subscription_id, target_url, timestamp, attempt_number, outcome, status_code, error
		FROM delivery_logs
		WHERE webhook_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	return r.queryLogs(ctx, query, webhookID, limit)
}

// CountByWebhookID conta as tentativas registradas para um webhook
func (r *Repository) CountByWebhookID(ctx context.Context, webhookID string) (int64, error) {
	query := "SELECT COUNT(*) FROM delivery_logs WHERE webhook_id = $1"

	var count int64
	if err := r.DB.QueryRowContext(ctx, query, webhookID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting delivery logs: %w", err)
	}

	return count, nil
}

// ListBySubscriptionID retorna as tentativas de uma subscription, mais recentes primeiro
func (r *Repository) ListBySubscriptionID(ctx context.Context, subscriptionID string, limit int) ([]delivery.Log, error) {
	query := `
		SELECT id, webhook_id, subscription_id, target_url, timestamp, attempt_number, outcome, status_code, error
		FROM delivery_logs
		WHERE subscription_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	return r.queryLogs(ctx, query, subscriptionID, limit)
}

// CountByOutcome agrupa o total de tentativas por outcome
func (r *Repository) CountByOutcome(ctx context.Context) (map[string]int64, error) {
	query := "SELECT outcome, COUNT(*) FROM delivery_logs GROUP BY outcome"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting outcomes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			outcome string
			count   int64
		)
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, fmt.Errorf("scanning outcome count: %w", err)
		}
		counts[outcome] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcome counts: %w", err)
	}

	return counts, nil
}

// PurgeOlderThan remove, em uma única transação, as linhas anteriores ao cutoff
func (r *Repository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning purge transaction: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM delivery_logs WHERE timestamp < $1", cutoff)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("purging delivery logs: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing purge transaction: %w", err)
	}

	return deleted, nil
}

// Close fecha a conexão com o banco de dados
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTable cria a tabela delivery_logs com seus índices (startup e testes)
func (r *Repository) CreateTable(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS delivery_logs (
			id UUID PRIMARY KEY,
			webhook_id UUID NOT NULL,
			subscription_id UUID NOT NULL,
			target_url TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			attempt_number INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			status_code INTEGER,
			error TEXT
		)`,
		"CREATE INDEX IF NOT EXISTS idx_delivery_logs_webhook_id ON delivery_logs (webhook_id)",
		"CREATE INDEX IF NOT EXISTS idx_delivery_logs_subscription_id ON delivery_logs (subscription_id)",
		"CREATE INDEX IF NOT EXISTS idx_delivery_logs_timestamp ON delivery_logs (timestamp)",
	}

	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}

	return nil
}

func (r *Repository) queryLogs(ctx context.Context, query string, args ...interface{}) ([]delivery.Log, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting delivery logs: %w", err)
	}
	defer rows.Close()

	var logs []delivery.Log

	for rows.Next() {
		var (
			log        delivery.Log
			outcome    string
			statusCode sql.NullInt64
			errDetail  sql.NullString
		)
		err := rows.Scan(
			&log.ID,
			&log.WebhookID,
			&log.SubscriptionID,
			&log.TargetURL,
			&log.Timestamp,
			&log.AttemptNumber,
			&outcome,
			&statusCode,
			&errDetail,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning delivery log: %w", err)
		}

		log.Outcome = delivery.NewOutcome(outcome)
		if statusCode.Valid {
			code := int(statusCode.Int64)
			log.StatusCode = &code
		}
		if errDetail.Valid {
			log.Error = &errDetail.String
		}

		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating delivery logs: %w", err)
	}

	return logs, nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
