package filehttp

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yourname/putget/internal/models"
	"github.com/yourname/putget/pkg/httperrors"
	"github.com/yourname/putget/pkg/transferproto"
)

// transfer разбирает метод один раз и передаёт запрос нужному обработчику.
func (a *Server) transfer(w http.ResponseWriter, r *http.Request) {
	clientPath := r.URL.Path
	if clientPath == transferproto.AdminPrefix || strings.HasPrefix(clientPath, transferproto.AdminPrefix+"/") {
		a.fail(w, r, models.NewTransferError(models.KindBadRequest, "reserved path", nil))
		return
	}

	switch models.ParseMethod(r.Method) {
	case models.MethodGet:
		a.retrieve(w, r, clientPath)
	case models.MethodPut, models.MethodPost:
		a.store(w, r, clientPath)
	default:
		a.fail(w, r, models.NewTransferError(models.KindInvalidMethod, r.Method, nil))
	}
}

// fail логирует отказ и рендерит его в ответ.
func (a *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	resp := httperrors.Render(err)
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("kind", models.KindOf(err).String()),
		zap.Int("status", resp.Status),
		zap.Error(err),
	}
	if resp.Status >= http.StatusInternalServerError {
		a.logger.Error("transfer failed", fields...)
	} else {
		a.logger.Info("transfer rejected", fields...)
	}

	httperrors.Write(w, err)
}
