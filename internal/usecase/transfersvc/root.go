package transfersvc

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yourname/putget/internal/models"
)

// Root — проверенный абсолютный корень хранилища. Неизменяем после NewRoot.
type Root struct {
	path   string
	prefix string
}

// NewRoot приводит путь к абсолютному виду и проверяет, что это существующий
// каталог, в который можно писать. Любой отказ — KindInitializationFailed.
func NewRoot(fsys FS, path string) (Root, error) {
	if strings.TrimSpace(path) == "" {
		return Root{}, models.NewTransferError(models.KindInitializationFailed, "storage root is empty", nil)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Root{}, models.NewTransferError(models.KindInitializationFailed, "resolve storage root", err)
	}

	fi, err := fsys.Stat(abs)
	if err != nil {
		return Root{}, models.NewTransferError(models.KindInitializationFailed, "storage root is not accessible", err)
	}
	if !fi.IsDir() {
		return Root{}, models.NewTransferError(models.KindInitializationFailed, "storage root is not a directory",
			fmt.Errorf("%s", abs))
	}

	// Проба записи: временный файл создаётся и сразу удаляется.
	probe, err := fsys.CreateTemp(abs)
	if err != nil {
		return Root{}, models.NewTransferError(models.KindInitializationFailed, "storage root is not writable", err)
	}
	if err := fsys.Remove(probe); err != nil {
		return Root{}, models.NewTransferError(models.KindInitializationFailed, "storage root probe cleanup", err)
	}

	return newRoot(abs), nil
}

func newRoot(abs string) Root {
	sep := string(filepath.Separator)
	prefix := abs
	if !strings.HasSuffix(prefix, sep) {
		prefix += sep
	}
	return Root{path: abs, prefix: prefix}
}

// Path возвращает абсолютный путь корня без завершающего разделителя.
func (r Root) Path() string { return r.path }
