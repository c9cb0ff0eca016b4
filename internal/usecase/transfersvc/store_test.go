package transfersvc

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourname/putget/internal/models"
	"github.com/yourname/putget/internal/repo"
)

var errInjected = errors.New("injected fault")

// faultFS подменяет отдельные шаги OSFS ошибками.
type faultFS struct {
	OSFS
	mkdir      bool
	createTemp bool
	openWrite  bool
	remove     func(name string) bool
	rename     bool
	// writeLimit > 0: запись обрывается после указанного числа байт.
	writeLimit int
	// shortWrite: Write сообщает о неполной записи без ошибки.
	shortWrite bool
}

func (f *faultFS) Mkdir(name string) error {
	if f.mkdir {
		return errInjected
	}
	return f.OSFS.Mkdir(name)
}

func (f *faultFS) CreateTemp(dir string) (string, error) {
	if f.createTemp {
		return "", errInjected
	}
	return f.OSFS.CreateTemp(dir)
}

func (f *faultFS) OpenWrite(name string) (io.WriteCloser, error) {
	if f.openWrite {
		return nil, errInjected
	}
	w, err := f.OSFS.OpenWrite(name)
	if err != nil {
		return nil, err
	}
	if f.writeLimit > 0 || f.shortWrite {
		return &faultWriter{WriteCloser: w, left: f.writeLimit, short: f.shortWrite}, nil
	}
	return w, nil
}

func (f *faultFS) Remove(name string) error {
	if f.remove != nil && f.remove(name) {
		return errInjected
	}
	return f.OSFS.Remove(name)
}

func (f *faultFS) Rename(oldpath, newpath string) error {
	if f.rename {
		return errInjected
	}
	return f.OSFS.Rename(oldpath, newpath)
}

type faultWriter struct {
	io.WriteCloser
	left  int
	short bool
}

func (w *faultWriter) Write(p []byte) (int, error) {
	if w.short {
		n, err := w.WriteCloser.Write(p[:len(p)/2])
		if err != nil {
			return n, err
		}
		return n, nil
	}
	if len(p) > w.left {
		n, _ := w.WriteCloser.Write(p[:w.left])
		w.left = 0
		return n, errInjected
	}
	w.left -= len(p)
	return w.WriteCloser.Write(p)
}

type errReader struct{ after io.Reader }

func (r errReader) Read(p []byte) (int, error) {
	n, err := r.after.Read(p)
	if errors.Is(err, io.EOF) {
		return n, errInjected
	}
	return n, err
}

type failingJournal struct{}

func (failingJournal) Record(context.Context, models.JournalEntry) error { return errInjected }
func (failingJournal) Last(context.Context, string) (models.JournalEntry, error) {
	return models.JournalEntry{}, errInjected
}

func newTestFiles(t *testing.T, fsys FS) (*Files, *repo.MemoryJournal) {
	t.Helper()
	root, err := NewRoot(OSFS{}, t.TempDir())
	require.NoError(t, err)
	j := repo.NewMemoryJournal()
	return New(Deps{Root: root, FS: fsys, Journal: j, ChunkSize: 4}), j
}

func readBack(t *testing.T, svc *Files, p string) []byte {
	t.Helper()
	dl, err := svc.Retrieve(context.Background(), p)
	require.NoError(t, err)
	defer dl.Body.Close()
	b, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	require.Equal(t, int64(len(b)), dl.Size)
	return b
}

func tempFiles(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsTempName(d.Name()) {
			out = append(out, p)
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestStore_CreatesDirsAndFile(t *testing.T) {
	svc, j := newTestFiles(t, OSFS{})
	ctx := context.Background()

	stored, err := svc.Store(ctx, "/a/b/c.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	require.Equal(t, "a/b/c.txt", stored.RelPath)
	require.Equal(t, int64(5), stored.Size)

	for _, d := range []string{"a", filepath.Join("a", "b")} {
		fi, err := os.Stat(filepath.Join(svc.Root.Path(), d))
		require.NoError(t, err)
		require.True(t, fi.IsDir())
	}

	b, err := os.ReadFile(filepath.Join(svc.Root.Path(), "a", "b", "c.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(b))
	require.Empty(t, tempFiles(t, svc.Root.Path()))

	sum := sha256.Sum256([]byte("hello"))
	entry, err := j.Last(ctx, "a/b/c.txt")
	require.NoError(t, err)
	require.Equal(t, hex.EncodeToString(sum[:]), entry.SHA256)
	require.Equal(t, int64(5), entry.Size)
}

func TestStore_RoundTrip(t *testing.T) {
	svc, _ := newTestFiles(t, OSFS{})
	payload := bytes.Repeat([]byte{0x00, 0xFF, 0x10}, 10_000)

	_, err := svc.Store(context.Background(), "bin/data", bytes.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, payload, readBack(t, svc, "bin/data"))
}

func TestStore_EmptyBody(t *testing.T) {
	svc, _ := newTestFiles(t, OSFS{})

	stored, err := svc.Store(context.Background(), "empty", bytes.NewReader(nil))
	require.NoError(t, err)
	require.Zero(t, stored.Size)
	require.Empty(t, readBack(t, svc, "empty"))
}

func TestStore_ReplacesPrevious(t *testing.T) {
	svc, _ := newTestFiles(t, OSFS{})
	ctx := context.Background()

	_, err := svc.Store(ctx, "f.txt", strings.NewReader("a much longer first version"))
	require.NoError(t, err)
	_, err = svc.Store(ctx, "f.txt", strings.NewReader("second"))
	require.NoError(t, err)

	require.Equal(t, "second", string(readBack(t, svc, "f.txt")))
	require.Empty(t, tempFiles(t, svc.Root.Path()))
}

func TestStore_Failures(t *testing.T) {
	cases := []struct {
		name string
		fs   *faultFS
		body io.Reader
		kind models.Kind
	}{
		{"mkdir", &faultFS{mkdir: true}, strings.NewReader("new"), models.KindDirectoryCreateFailed},
		{"temp", &faultFS{createTemp: true}, strings.NewReader("new"), models.KindTempFileFailed},
		{"open", &faultFS{openWrite: true}, strings.NewReader("new"), models.KindOpenFailed},
		{"nil body", &faultFS{}, nil, models.KindOpenFailed},
		{"partial write", &faultFS{writeLimit: 6}, strings.NewReader("new content that is long"), models.KindWriteFailed},
		{"short write", &faultFS{shortWrite: true}, strings.NewReader("new content"), models.KindWriteFailed},
		{"body read", &faultFS{}, errReader{strings.NewReader("new content")}, models.KindWriteFailed},
		{"delete previous", &faultFS{remove: func(n string) bool { return !IsTempName(filepath.Base(n)) }},
			strings.NewReader("new"), models.KindDeletePreviousFailed},
		{"rename", &faultFS{rename: true}, strings.NewReader("new"), models.KindRenameFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestFiles(t, tc.fs)
			ctx := context.Background()

			// Прежняя версия пишется в существующий каталог, без сбоев mkdir.
			target := "dir/file.txt"
			if tc.kind == models.KindDirectoryCreateFailed {
				target = "fresh/file.txt"
			}
			require.NoError(t, os.MkdirAll(filepath.Join(svc.Root.Path(), "dir"), 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(svc.Root.Path(), "dir", "file.txt"), []byte("old"), 0o644))

			_, err := svc.Store(ctx, target, tc.body)
			require.Error(t, err)
			require.Equal(t, tc.kind, models.KindOf(err))

			require.Equal(t, "old", string(readBack(t, svc, "dir/file.txt")))
			require.Empty(t, tempFiles(t, svc.Root.Path()))
		})
	}
}

func TestStore_CleanupDoesNotMaskError(t *testing.T) {
	fsys := &faultFS{rename: true, remove: func(string) bool { return true }}
	svc, _ := newTestFiles(t, fsys)

	_, err := svc.Store(context.Background(), "x.txt", strings.NewReader("data"))
	require.Equal(t, models.KindRenameFailed, models.KindOf(err))
	require.ErrorIs(t, err, errInjected)
}

func TestStore_IntermediateIsFile(t *testing.T) {
	svc, _ := newTestFiles(t, OSFS{})
	ctx := context.Background()

	_, err := svc.Store(ctx, "a", strings.NewReader("file"))
	require.NoError(t, err)

	_, err = svc.Store(ctx, "a/b.txt", strings.NewReader("nested"))
	require.Equal(t, models.KindDirectoryCreateFailed, models.KindOf(err))
}

func TestStore_TargetIsDirectory(t *testing.T) {
	svc, _ := newTestFiles(t, OSFS{})
	require.NoError(t, os.MkdirAll(filepath.Join(svc.Root.Path(), "d"), 0o755))

	_, err := svc.Store(context.Background(), "d", strings.NewReader("x"))
	require.Equal(t, models.KindDeletePreviousFailed, models.KindOf(err))
	require.Empty(t, tempFiles(t, svc.Root.Path()))
}

func TestStore_Traversal(t *testing.T) {
	svc, _ := newTestFiles(t, OSFS{})
	outside := filepath.Join(filepath.Dir(svc.Root.Path()), "escaped.txt")

	_, err := svc.Store(context.Background(), "../escaped.txt", strings.NewReader("x"))
	require.Equal(t, models.KindForbidden, models.KindOf(err))

	_, statErr := os.Stat(outside)
	require.True(t, errors.Is(statErr, fs.ErrNotExist))
}

func TestStore_JournalFailureIsNotFatal(t *testing.T) {
	root, err := NewRoot(OSFS{}, t.TempDir())
	require.NoError(t, err)
	svc := New(Deps{Root: root, Journal: failingJournal{}})

	_, err = svc.Store(context.Background(), "ok.txt", strings.NewReader("x"))
	require.NoError(t, err)
	require.Equal(t, "x", string(readBack(t, svc, "ok.txt")))
}

func TestRetrieve_NotFound(t *testing.T) {
	svc, _ := newTestFiles(t, OSFS{})
	ctx := context.Background()
	require.NoError(t, os.MkdirAll(filepath.Join(svc.Root.Path(), "dir"), 0o755))

	for _, p := range []string{"never/stored.txt", "dir"} {
		_, err := svc.Retrieve(ctx, p)
		require.Equal(t, models.KindNotFound, models.KindOf(err), p)
	}

	_, err := svc.Retrieve(ctx, "/../../etc/passwd")
	require.Equal(t, models.KindForbidden, models.KindOf(err))
}

func TestStat(t *testing.T) {
	svc, _ := newTestFiles(t, OSFS{})
	ctx := context.Background()

	_, err := svc.Stat(ctx, "a.txt")
	require.Equal(t, models.KindNotFound, models.KindOf(err))

	_, err = svc.Store(ctx, "./a.txt", strings.NewReader("abc"))
	require.NoError(t, err)

	entry, err := svc.Stat(ctx, "a.txt")
	require.NoError(t, err)
	require.Equal(t, "a.txt", entry.Path)
	require.Equal(t, int64(3), entry.Size)
}
