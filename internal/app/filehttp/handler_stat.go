package filehttp

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yourname/putget/pkg/transferproto"
)

// stat отдаёт запись журнала о последнем сохранении пути.
func (a *Server) stat(w http.ResponseWriter, r *http.Request) {
	clientPath := strings.TrimPrefix(r.URL.Path, transferproto.StatPrefix)

	entry, err := a.files.Stat(r.Context(), clientPath)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entry)
}
