package filehttp

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/yourname/putget/internal/usecase/transfersvc"
)

// healthStats — payload ответа /-/health.
type healthStats struct {
	OK         bool  `json:"ok"`
	TotalBytes int64 `json:"total_bytes"`
	Files      int64 `json:"files"`
}

// health возвращает агрегированную статистику по корню хранилища.
func (a *Server) health(w http.ResponseWriter, _ *http.Request) {
	stats, err := collectStats(os.DirFS(a.root))

	status := http.StatusOK
	if err != nil {
		a.logger.Error("health walk failed", zap.Error(err))
		status = http.StatusServiceUnavailable
	} else {
		stats.OK = true
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(stats)
}

// collectStats суммирует размеры сохранённых файлов. Временные файлы
// незавершённых загрузок в объём не входят. Файл или каталог, исчезнувший
// во время обхода (удаление, rename), пропускается.
func collectStats(fsys fs.FS) (healthStats, error) {
	var stats healthStats
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != "." && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || transfersvc.IsTempName(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		stats.TotalBytes += info.Size()
		stats.Files++

		return nil
	})
	return stats, err
}
