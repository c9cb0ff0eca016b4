package transfersvc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yourname/putget/internal/models"
)

// Store сохраняет тело запроса по клиентскому пути.
//
// Запись идёт во временный файл в каталоге цели, затем прежний файл удаляется
// и временный переименовывается на его место. Читатель видит либо старый
// файл целиком, либо новый целиком. Одновременные записи в один путь не
// согласуются: побеждает последнее переименование.
func (s *Files) Store(ctx context.Context, clientPath string, body io.Reader) (models.StoredFile, error) {
	res, err := s.Root.Resolve(clientPath)
	if err != nil {
		return models.StoredFile{}, err
	}

	if err = s.ensureDirs(res); err != nil {
		return models.StoredFile{}, err
	}

	size, sum, err := s.commit(res, body)
	if err != nil {
		return models.StoredFile{}, err
	}

	stored := models.StoredFile{RelPath: res.RelPath, Size: size, SHA256: sum}
	s.record(ctx, stored)

	return stored, nil
}

// ensureDirs создаёт недостающие промежуточные каталоги по одному префиксу за раз.
func (s *Files) ensureDirs(res Resolved) error {
	dir := s.Root.Path()
	for i, seg := range res.IntermediateDirs {
		dir = filepath.Join(dir, seg)
		rel := joinRel(res.IntermediateDirs[:i+1])

		fi, err := s.FS.Stat(dir)
		if err == nil {
			if fi.IsDir() {
				continue
			}
			return models.NewTransferError(models.KindDirectoryCreateFailed, rel,
				fmt.Errorf("%s is not a directory", dir))
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return models.NewTransferError(models.KindDirectoryCreateFailed, rel, err)
		}

		if err = s.FS.Mkdir(dir); err != nil {
			// Каталог мог успеть создать параллельный запрос.
			if fi, statErr := s.FS.Stat(dir); statErr == nil && fi.IsDir() {
				continue
			}
			return models.NewTransferError(models.KindDirectoryCreateFailed, rel, err)
		}
	}

	return nil
}

// commit пишет тело во временный файл и атомарно ставит его на место цели.
// При любом отказе временный файл удаляется, наружу уходит исходная ошибка.
func (s *Files) commit(res Resolved, body io.Reader) (size int64, sum string, err error) {
	tmp, err := s.FS.CreateTemp(filepath.Dir(res.AbsolutePath))
	if err != nil {
		return 0, "", models.NewTransferError(models.KindTempFileFailed, res.RelPath, err)
	}

	var w io.WriteCloser
	defer func() {
		if err == nil {
			return
		}
		if w != nil {
			_ = w.Close()
		}
		if _, statErr := s.FS.Stat(tmp); statErr == nil {
			if rmErr := s.FS.Remove(tmp); rmErr != nil {
				s.Logger.Warn("temp file cleanup failed", zap.String("temp", tmp), zap.Error(rmErr))
			}
		}
	}()

	if body == nil {
		return 0, "", models.NewTransferError(models.KindOpenFailed, "request body is not readable", nil)
	}
	if w, err = s.FS.OpenWrite(tmp); err != nil {
		w = nil
		return 0, "", models.NewTransferError(models.KindOpenFailed, res.RelPath, err)
	}

	h := sha256.New()
	if size, err = copyChunks(w, h, body, s.ChunkSize); err != nil {
		return 0, "", models.NewTransferError(models.KindWriteFailed, res.RelPath, err)
	}

	closeErr := w.Close()
	w = nil
	if closeErr != nil {
		err = models.NewTransferError(models.KindWriteFailed, res.RelPath, closeErr)
		return 0, "", err
	}

	if err = s.removePrevious(res); err != nil {
		return 0, "", err
	}

	if err = s.FS.Rename(tmp, res.AbsolutePath); err != nil {
		return 0, "", models.NewTransferError(models.KindRenameFailed, res.RelPath, err)
	}

	return size, hex.EncodeToString(h.Sum(nil)), nil
}

// removePrevious удаляет уже существующий файл по целевому пути.
func (s *Files) removePrevious(res Resolved) error {
	fi, err := s.FS.Stat(res.AbsolutePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return models.NewTransferError(models.KindDeletePreviousFailed, res.RelPath, err)
	}
	if fi.IsDir() {
		return models.NewTransferError(models.KindDeletePreviousFailed, res.RelPath,
			fmt.Errorf("%s is a directory", res.AbsolutePath))
	}
	// Файл мог удалить параллельный запрос к тому же пути: цель всё равно достигнута.
	if err = s.FS.Remove(res.AbsolutePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return models.NewTransferError(models.KindDeletePreviousFailed, res.RelPath, err)
	}
	return nil
}

// copyChunks копирует r в w блоками по chunk байт, попутно считая хеш.
// Неполная запись блока считается ошибкой.
func copyChunks(w io.Writer, h hash.Hash, r io.Reader, chunk int) (int64, error) {
	buf := make([]byte, chunk)
	var total int64
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			wn, werr := w.Write(buf[:n])
			if werr != nil {
				return total, werr
			}
			if wn != n {
				return total, io.ErrShortWrite
			}
			h.Write(buf[:n])
			total += int64(n)
		}
		if errors.Is(rerr, io.EOF) {
			return total, nil
		}
		if rerr != nil {
			return total, fmt.Errorf("read request body: %w", rerr)
		}
	}
}

// record пишет запись в журнал. Файл уже на месте, поэтому ошибка журнала только логируется.
func (s *Files) record(ctx context.Context, stored models.StoredFile) {
	if s.Journal == nil {
		return
	}
	entry := models.JournalEntry{
		Path:     stored.RelPath,
		Size:     stored.Size,
		SHA256:   stored.SHA256,
		StoredAt: s.Now().UTC(),
	}
	if err := s.Journal.Record(ctx, entry); err != nil {
		s.Logger.Warn("journal record failed", zap.String("path", stored.RelPath), zap.Error(err))
	}
}

func joinRel(segs []string) string {
	return filepath.ToSlash(filepath.Join(segs...))
}
