package transfersvc

import (
	"path/filepath"
	"strings"

	"github.com/yourname/putget/internal/models"
)

// Resolved — результат разрешения клиентского пути внутри корня.
type Resolved struct {
	// RelPath — путь относительно корня через '/', для ответов и журнала.
	RelPath      string
	AbsolutePath string
	// IntermediateDirs — каталоги между корнем и файлом, без имени файла.
	IntermediateDirs []string
}

// Resolve превращает клиентский путь в абсолютный путь внутри корня.
//
// Нормализация чисто лексическая: целевой файл может ещё не существовать,
// поэтому filepath.EvalSymlinks и подобные вызовы здесь не подходят.
// Проверка на выход за корень выполняется только после полной нормализации.
func (r Root) Resolve(clientPath string) (Resolved, error) {
	sep := string(filepath.Separator)

	joined := r.path + sep + normalizeSeparators(clientPath)
	abs := collapse(joined)

	if abs == r.path {
		return Resolved{}, models.NewTransferError(models.KindBadRequest, "path does not name a file", nil)
	}
	if !strings.HasPrefix(abs, r.prefix) {
		return Resolved{}, models.NewTransferError(models.KindForbidden, "path escapes storage root", nil)
	}

	segs := strings.Split(strings.TrimPrefix(abs, r.prefix), sep)
	// Имена временных файлов зарезервированы: их удаляет сборщик мусора.
	for _, seg := range segs {
		if IsTempName(seg) {
			return Resolved{}, models.NewTransferError(models.KindBadRequest, "path uses a reserved temporary file name", nil)
		}
	}

	return Resolved{
		RelPath:          strings.Join(segs, "/"),
		AbsolutePath:     abs,
		IntermediateDirs: segs[:len(segs)-1],
	}, nil
}

// normalizeSeparators приводит и '/', и '\' к разделителю платформы.
func normalizeSeparators(p string) string {
	sep := string(filepath.Separator)
	p = strings.ReplaceAll(p, "\\", sep)
	return strings.ReplaceAll(p, "/", sep)
}

// collapse разворачивает '.' и '..' через стек сегментов. '..' над корнем
// файловой системы ничего не делает.
func collapse(p string) string {
	sep := string(filepath.Separator)
	vol := filepath.VolumeName(p)

	var stack []string
	for _, seg := range strings.Split(p[len(vol):], sep) {
		switch seg {
		case "", ".":
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, seg)
		}
	}

	return vol + sep + strings.Join(stack, sep)
}
