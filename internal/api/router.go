package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/SergeyParamoshkin/articles/docs" // swagger docs
	"github.com/SergeyParamoshkin/articles/internal/article"
	"github.com/SergeyParamoshkin/articles/internal/comment"
	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/logging"
	"github.com/SergeyParamoshkin/articles/internal/metrics"
	"github.com/SergeyParamoshkin/articles/internal/store"
)

// NewRouter mounts the articles and comments resources under basePath.
// m may be nil, in which case requests are not counted.
func NewRouter(st store.Store, logger *zap.SugaredLogger, m *metrics.Metrics, basePath string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(logger))
	r.Use(logging.AccessLog)
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(errresponse.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(errresponse.NotFound)
	r.MethodNotAllowed(errresponse.NotFound)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("pong"))
		if err != nil {
			logging.FromContext(r.Context()).Errorw(err.Error())
		}
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if basePath == "" {
		basePath = "/"
	}
	r.Route(basePath, func(r chi.Router) {
		r.Route("/articles", article.NewHandler(st, st).Routes)
		r.Route("/comments", comment.NewHandler(st, st).Routes)
	})

	return r
}
