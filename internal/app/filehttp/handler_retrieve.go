package filehttp

import (
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/yourname/putget/pkg/transferproto"
)

// retrieve отдаёт сохранённый файл целиком. Диапазоны не поддерживаются.
func (a *Server) retrieve(w http.ResponseWriter, r *http.Request, clientPath string) {
	dl, err := a.files.Retrieve(r.Context(), clientPath)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	defer dl.Body.Close()

	h := w.Header()
	h.Set("Expires", transferproto.ExpiresValue)
	h.Set("Cache-Control", transferproto.CacheControlValue)
	h.Set("Pragma", transferproto.PragmaValue)
	h.Set("Content-Type", "application/octet-stream")
	h.Set("Content-Length", strconv.FormatInt(dl.Size, 10))
	w.WriteHeader(http.StatusOK)

	// Заголовки уже отправлены: обрыв посреди потока можно только залогировать.
	if n, err := io.Copy(w, dl.Body); err != nil {
		a.logger.Warn("retrieve interrupted",
			zap.String("path", dl.RelPath),
			zap.Int64("sent", n),
			zap.Error(err))
	}
}
