package errresponse

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articles/internal/logging"
)

// Recoverer turns a panic in a downstream handler into a logged 500 with the
// usual error payload. http.ErrAbortHandler is re-raised for net/http.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger := logging.FromContext(r.Context())
			logger.Errorw("handler panic", "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))

			if err := render.Render(w, r, Classify(fmt.Errorf("panic: %v", rec))); err != nil {
				logger.Errorw("render error response", "error", err)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
