package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voyagen/iptvindex/internal/models"
)

var channelColumns = []string{"position", "name", "url", "tvg_id", "tvg_logo", "category", "country", "language"}

// Postgres implements Store using PostgreSQL. Rows are keyed by their
// position in the published sequence.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store from a DSN. Caller must call Close when done.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) String() string { return "postgres table channels" }

// Close closes the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// Load returns every channel ordered by position.
func (p *Postgres) Load(ctx context.Context) ([]models.Channel, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT name, url, tvg_id, tvg_logo, category, country, language
		 FROM channels ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	channels, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Channel])
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	if channels == nil {
		channels = []models.Channel{}
	}
	return channels, nil
}

// Publish replaces all rows in one transaction, so concurrent readers
// see either the previous or the new dataset.
func (p *Postgres) Publish(ctx context.Context, channels []models.Channel) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("Publish: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `DELETE FROM channels`); err != nil {
		return fmt.Errorf("Publish: delete: %w", err)
	}
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"channels"}, channelColumns,
		pgx.CopyFromSlice(len(channels), func(i int) ([]any, error) {
			ch := channels[i]
			return []any{i, ch.Name, ch.URL, ch.TvgID, ch.TvgLogo, ch.Category, ch.Country, ch.Language}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("Publish: copy: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("Publish: commit: %w", err)
	}
	return nil
}
