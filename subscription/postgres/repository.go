package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/marcelsud/webhook-courier/subscription"
)

/* PostgreSQL implementation of subscription.Repository
 * Uses $1, $2 placeholders; events is a TEXT[] column
 * handled through pq.Array
 */

type Repository struct {
	DB *sql.DB
}

// NewRepository creates a PostgreSQL repository with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig creates a PostgreSQL repository with a custom pool
// maxOpenConns: max simultaneous connections (0 = unlimited)
// maxIdleConns: max idle connections kept in the pool
// maxLifeMinutes: max minutes a connection can be reused
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

// Get busca uma subscription por id
func (r *Repository) Get(ctx context.Context, id string) (subscription.Subscription, error) {
	query := "SELECT id, target_url, secret, events FROM subscriptions WHERE id = $1"

	var (
		sub    subscription.Subscription
		secret sql.NullString
		events pq.StringArray
	)
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&sub.ID,
		&sub.TargetURL,
		&secret,
		&events,
	)

	if err == sql.ErrNoRows {
		return subscription.Subscription{}, subscription.ErrNotFound
	}
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("selecting subscription: %w", err)
	}

	if secret.Valid {
		sub.Secret = &secret.String
	}
	if events != nil {
		sub.Events = []string(events)
	}

	return sub, nil
}

// List retorna uma página de subscriptions
func (r *Repository) List(ctx context.Context, limit, offset int) ([]subscription.Subscription, error) {
	query := "SELECT id, target_url, secret, events FROM subscriptions ORDER BY id LIMIT $1 OFFSET $2"

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("selecting subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []subscription.Subscription

	for rows.Next() {
		var (
			sub    subscription.Subscription
			secret sql.NullString
			events pq.StringArray
		)
		if err := rows.Scan(&sub.ID, &sub.TargetURL, &secret, &events); err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}
		if secret.Valid {
			sub.Secret = &secret.String
		}
		if events != nil {
			sub.Events = []string(events)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subscriptions: %w", err)
	}

	return subs, nil
}

// Insert insere uma nova subscription
func (r *Repository) Insert(ctx context.Context, sub subscription.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, target_url, secret, events)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.DB.ExecContext(ctx, query, sub.ID, sub.TargetURL, nullableString(sub.Secret), eventsArray(sub.Events))
	if err != nil {
		return fmt.Errorf("inserting subscription: %w", err)
	}

	return nil
}

// Update atualiza uma subscription existente
func (r *Repository) Update(ctx context.Context, sub subscription.Subscription) error {
	query := `
		UPDATE subscriptions
		SET target_url = $1, secret = $2, events = $3
		WHERE id = $4
	`

	result, err := r.DB.ExecContext(ctx, query, sub.TargetURL, nullableString(sub.Secret), eventsArray(sub.Events), sub.ID)
	if err != nil {
		return fmt.Errorf("updating subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return subscription.ErrNotFound
	}

	return nil
}

// Delete remove uma subscription por id
func (r *Repository) Delete(ctx context.Context, id string) error {
	query := "DELETE FROM subscriptions WHERE id = $1"

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return subscription.ErrNotFound
	}

	return nil
}

// Close fecha a conexão com o banco de dados
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTable cria a tabela subscriptions (startup e testes)
func (r *Repository) CreateTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS subscriptions (
			id UUID PRIMARY KEY,
			target_url TEXT NOT NULL,
			secret TEXT,
			events TEXT[]
		)
	`

	_, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	return nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func eventsArray(events []string) interface{} {
	if events == nil {
		return nil
	}
	return pq.Array(events)
}
