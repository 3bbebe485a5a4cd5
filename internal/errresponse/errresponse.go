// Package errresponse turns handler errors into JSON error payloads.
package errresponse

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articles/internal/logging"
	"github.com/SergeyParamoshkin/articles/internal/store"
)

const (
	unexpectedMessage       = "Unexpected error"
	resourceNotFoundMessage = "Resource not found"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	Message string `json:"message"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

// Classify maps err onto a status code and client facing message. Errors it
// does not recognise become a 500 whose message hides the cause.
func Classify(err error) *ErrResponse {
	var (
		reqErr      *RequestError
		notFoundErr *NotFoundError
		validErr    *store.ValidationError
		castErr     *store.CastError
	)

	switch {
	case errors.As(err, &reqErr):
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, Message: reqErr.Error()}
	case errors.As(err, &validErr):
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, Message: validErr.Error()}
	case errors.As(err, &castErr):
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, Message: castErr.Error()}
	case errors.As(err, &notFoundErr):
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusNotFound, Message: notFoundErr.Error()}
	default:
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusInternalServerError, Message: unexpectedMessage}
	}
}

// HandlerFunc is an http.HandlerFunc that reports failure by returning it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to http.HandlerFunc. A returned error is classified,
// logged and rendered in place of the normal response.
func Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		resp := Classify(err)
		logger := logging.FromContext(r.Context())
		if resp.HTTPStatusCode >= http.StatusInternalServerError {
			logger.Errorw("request failed", "path", r.URL.Path, "error", err)
		} else {
			logger.Warnw("request rejected", "path", r.URL.Path, "status", resp.HTTPStatusCode, "error", err)
		}

		if err := render.Render(w, r, resp); err != nil {
			logger.Errorw("render error response", "error", err)
		}
	}
}

// NotFound answers requests that matched no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	err := render.Render(w, r, &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: resourceNotFoundMessage})
	if err != nil {
		logging.FromContext(r.Context()).Errorw(err.Error())
	}
}
