package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourname/putget/internal/models"
)

const journalTable = "transfer_journal"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PGJournal хранит журнал в Postgres.
type PGJournal struct {
	pool *pgxpool.Pool
}

// NewPGJournal создаёт пул подключений к Postgres. Таблицу создают миграции (cmd/migrate).
func NewPGJournal(ctx context.Context, dsn string) (*PGJournal, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("meta dsn is empty")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &PGJournal{pool: pool}, nil
}

// Record записывает (или обновляет) запись о пути.
func (j *PGJournal) Record(ctx context.Context, e models.JournalEntry) error {
	sqlStr, args, err := psql.
		Insert(journalTable).
		Columns("path", "size", "sha256", "stored_at").
		Values(e.Path, e.Size, e.SHA256, e.StoredAt).
		Suffix(`
			ON CONFLICT (path) DO UPDATE
			SET size      = EXCLUDED.size,
				sha256    = EXCLUDED.sha256,
				stored_at = EXCLUDED.stored_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert sql: %w", err)
	}

	if _, err = j.pool.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("exec upsert: %w", err)
	}

	return nil
}

// Last возвращает запись о пути или models.ErrNotFound.
func (j *PGJournal) Last(ctx context.Context, path string) (models.JournalEntry, error) {
	sqlStr, args, err := psql.
		Select("size", "sha256", "stored_at").
		From(journalTable).
		Where(sq.Eq{"path": path}).
		Limit(1).
		ToSql()
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("build select: %w", err)
	}

	e := models.JournalEntry{Path: path}
	err = j.pool.QueryRow(ctx, sqlStr, args...).Scan(&e.Size, &e.SHA256, &e.StoredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.JournalEntry{}, models.ErrNotFound
	}
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("scan journal row: %w", err)
	}

	return e, nil
}

// Close освобождает подключения пула.
func (j *PGJournal) Close() {
	if j.pool != nil {
		j.pool.Close()
	}
}
