package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourname/putget/internal/models"
)

const memoryScheme = "memory://"

// Journal — журнал с освобождением ресурсов.
type Journal interface {
	Record(ctx context.Context, e models.JournalEntry) error
	Last(ctx context.Context, path string) (models.JournalEntry, error)
	Close()
}

// IsMemoryDSN сообщает, выбран ли in-memory журнал.
func IsMemoryDSN(dsn string) bool {
	return strings.HasPrefix(strings.TrimSpace(dsn), memoryScheme)
}

// Open выбирает реализацию журнала по DSN: memory:// или postgres://.
func Open(ctx context.Context, dsn string) (Journal, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "" || IsMemoryDSN(dsn):
		return NewMemoryJournal(), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPGJournal(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported meta dsn scheme: %q", dsn)
	}
}
