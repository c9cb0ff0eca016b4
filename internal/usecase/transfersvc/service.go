package transfersvc

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/yourname/putget/internal/models"
)

const defaultChunkSize = 32 << 10

type (
	// Journal хранит сведения о последнем сохранении каждого пути.
	Journal interface {
		Record(ctx context.Context, entry models.JournalEntry) error
		Last(ctx context.Context, path string) (models.JournalEntry, error)
	}

	// Service объединяет операции сохранения и выдачи файлов.
	Service interface {
		Store(ctx context.Context, clientPath string, body io.Reader) (models.StoredFile, error)
		Retrieve(ctx context.Context, clientPath string) (*Download, error)
		Stat(ctx context.Context, clientPath string) (models.JournalEntry, error)
	}
)

type Deps struct {
	Root      Root
	FS        FS
	Journal   Journal
	ChunkSize int
	Logger    *zap.Logger
	Now       func() time.Time
}

// Files — сервис передачи файлов поверх одного корня хранилища.
// Кроме неизменяемого Deps общего состояния между запросами нет.
type Files struct {
	Deps
}

// New конструирует сервис с заданными зависимостями, подставляя дефолты.
func New(deps Deps) *Files {
	if deps.FS == nil {
		deps.FS = OSFS{}
	}
	if deps.ChunkSize <= 0 {
		deps.ChunkSize = defaultChunkSize
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Files{Deps: deps}
}

var _ Service = (*Files)(nil)
