package filehttp

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/yourname/putget/pkg/transferproto"
)

// store сохраняет тело PUT/POST-запроса и отвечает 201 с относительным путём.
func (a *Server) store(w http.ResponseWriter, r *http.Request, clientPath string) {
	stored, err := a.files.Store(r.Context(), clientPath, r.Body)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.logger.Info("file stored",
		zap.String("path", stored.RelPath),
		zap.Int64("bytes", stored.Size),
		zap.String("sha256", stored.SHA256))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Location", "/"+stored.RelPath)
	w.Header().Set(transferproto.HeaderChecksum, stored.SHA256)
	w.Header().Set(transferproto.HeaderSize, strconv.FormatInt(stored.Size, 10))
	w.WriteHeader(http.StatusCreated)
	_, _ = fmt.Fprintf(w, "Created %s\n", stored.RelPath)
}
