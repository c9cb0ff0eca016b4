package filehttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yourname/putget/internal/usecase/transfersvc"
	"github.com/yourname/putget/pkg/transferproto"
)

// Server обслуживает HTTP API хранилища поверх одного корня.
type Server struct {
	files   transfersvc.Service
	root    string
	tempTTL time.Duration
	logger  *zap.Logger
}

// Deps — зависимости HTTP-слоя.
type Deps struct {
	Files   transfersvc.Service
	Root    string
	TempTTL time.Duration
	Logger  *zap.Logger
}

// New создаёт HTTP-обработчик хранилища.
func New(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.TempTTL <= 0 {
		deps.TempTTL = defaultTempTTL
	}

	srv := &Server{
		files:   deps.Files,
		root:    deps.Root,
		tempTTL: deps.TempTTL,
		logger:  deps.Logger,
	}

	return srv.routes()
}

// routes регистрирует служебные обработчики и catch-all для путей файлов.
func (a *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLog(a.logger))

	r.Get(transferproto.HealthPath, a.health)
	r.Post(transferproto.GCPath, a.gcOnce)
	r.Get(transferproto.StatPrefix+"/*", a.stat)

	// Метод разбирается в transfer, а не роутером: все методы попадают в один обработчик.
	r.HandleFunc("/*", a.transfer)

	return r
}
