package errresponse

// RequestError reports a request that is inconsistent or incomplete, such as
// an id mismatch or a missing required reference.
type RequestError struct {
	Message string
}

func NewRequestError(message string) error {
	return &RequestError{Message: message}
}

func (e *RequestError) Error() string {
	return e.Message
}

// NotFoundError reports that a targeted or referenced record does not exist.
type NotFoundError struct {
	Message string
}

func NewNotFoundError(message string) error {
	return &NotFoundError{Message: message}
}

func (e *NotFoundError) Error() string {
	return e.Message
}
