package transfersvc

import (
	"context"
	"errors"
	"io"
	"io/fs"

	"github.com/yourname/putget/internal/models"
)

// Download — открытый на чтение сохранённый файл. Body закрывает вызывающий.
type Download struct {
	RelPath string
	Size    int64
	Body    io.ReadCloser
}

// Retrieve открывает файл по клиентскому пути. Отсутствующий путь или
// не обычный файл (каталог, устройство) — KindNotFound.
func (s *Files) Retrieve(_ context.Context, clientPath string) (*Download, error) {
	res, err := s.Root.Resolve(clientPath)
	if err != nil {
		return nil, err
	}

	fi, err := s.FS.Stat(res.AbsolutePath)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, models.NewTransferError(models.KindNotFound, res.RelPath, err)
	}

	rc, err := s.FS.Open(res.AbsolutePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.NewTransferError(models.KindNotFound, res.RelPath, err)
		}
		return nil, models.NewTransferError(models.KindOpenFailed, res.RelPath, err)
	}

	return &Download{RelPath: res.RelPath, Size: fi.Size(), Body: rc}, nil
}

// Stat возвращает запись журнала о последнем сохранении пути.
func (s *Files) Stat(ctx context.Context, clientPath string) (models.JournalEntry, error) {
	res, err := s.Root.Resolve(clientPath)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if s.Journal == nil {
		return models.JournalEntry{}, models.NewTransferError(models.KindNotFound, res.RelPath, nil)
	}

	entry, err := s.Journal.Last(ctx, res.RelPath)
	if errors.Is(err, models.ErrNotFound) {
		return models.JournalEntry{}, models.NewTransferError(models.KindNotFound, res.RelPath, err)
	}
	if err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}
