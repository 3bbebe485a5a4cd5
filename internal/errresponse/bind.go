package errresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/render"
)

const malformedBodyMessage = "Malformed request body"

// Bind decodes the request body into v. An empty body leaves v at its zero
// value so that the usual field checks answer instead of the decoder.
// Decoder failures come back as a *RequestError.
func Bind(r *http.Request, v render.Binder) error {
	err := render.Bind(r, v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return NewRequestError(fmt.Sprintf("Invalid value for field %s", typeErr.Field))
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return err
	}

	return NewRequestError(malformedBodyMessage)
}
