package filehttp

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/yourname/putget/internal/usecase/transfersvc"
)

const defaultTempTTL = 24 * time.Hour

// gcOnce вручную запускает удаление брошенных временных файлов.
func (a *Server) gcOnce(w http.ResponseWriter, _ *http.Request) {
	if _, err := SweepTemp(a.root, a.tempTTL, a.logger); err != nil {
		a.logger.Error("manual sweep failed", zap.Error(err))
		http.Error(w, "sweep failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RunSweeper периодически чистит корень до отмены ctx. Первый проход делается сразу,
// хвосты от предыдущего запуска убираются при старте.
func RunSweeper(ctx context.Context, root string, ttl, every time.Duration, logger *zap.Logger) error {
	if every <= 0 || ttl <= 0 {
		return nil
	}

	if _, err := SweepTemp(root, ttl, logger); err != nil {
		logger.Warn("sweep failed", zap.Error(err))
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := SweepTemp(root, ttl, logger); err != nil {
				logger.Warn("sweep failed", zap.Error(err))
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// SweepTemp удаляет временные файлы загрузок, не менявшиеся дольше ttl.
// Идущие загрузки пишут в свой файл и обновляют mtime, поэтому их не трогает.
func SweepTemp(root string, ttl time.Duration, logger *zap.Logger) (int, error) {
	cutoff := time.Now().Add(-ttl)
	removed := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !transfersvc.IsTempName(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(cutoff) {
			return nil
		}

		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("sweep: remove failed", zap.String("temp", path), zap.Error(err))
			return nil
		}
		removed++
		return nil
	})

	if removed > 0 {
		logger.Info("sweep: removed stale temp files", zap.Int("removed", removed))
	}

	return removed, err
}
