package transfersvc

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// TempPrefix и TempSuffix задают имя временного файла загрузки: .putget-<uuid>.tmp
	TempPrefix = ".putget-"
	TempSuffix = ".tmp"

	dirPerm  = 0o755
	filePerm = 0o644
)

// FS — файловые операции, которыми пользуется сервис передачи.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Mkdir(name string) error
	// CreateTemp создаёт пустой файл с уникальным именем в dir и возвращает его путь.
	CreateTemp(dir string) (string, error)
	OpenWrite(name string) (io.WriteCloser, error)
	Open(name string) (io.ReadCloser, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
}

// OSFS реализует FS поверх локального диска.
type OSFS struct{}

var _ FS = OSFS{}

func (OSFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (OSFS) Mkdir(name string) error { return os.Mkdir(name, dirPerm) }

func (OSFS) CreateTemp(dir string) (string, error) {
	name := filepath.Join(dir, TempPrefix+uuid.NewString()+TempSuffix)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
	if err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}

func (OSFS) OpenWrite(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_WRONLY|os.O_TRUNC, filePerm)
}

func (OSFS) Open(name string) (io.ReadCloser, error) { return os.Open(name) }

func (OSFS) Remove(name string) error { return os.Remove(name) }

func (OSFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

// IsTempName сообщает, похоже ли имя файла на временный файл загрузки.
func IsTempName(name string) bool {
	return strings.HasPrefix(name, TempPrefix) && strings.HasSuffix(name, TempSuffix)
}
