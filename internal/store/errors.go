package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// ValidationError is returned when a record does not satisfy the schema of
// its collection.
type ValidationError struct {
	Collection string
	Fields     []string
	Reason     string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s validation failed: %s", e.Collection, e.Reason)
	}

	return fmt.Sprintf("%s validation failed: %s is required", e.Collection, strings.Join(e.Fields, ", "))
}

// CastError is returned when a value cannot be interpreted as the type the
// store expects, typically a malformed identifier.
type CastError struct {
	Kind  string
	Value string
	Path  string
	Err   error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cast to %s failed for value %q at path %q", e.Kind, e.Value, e.Path)
}

func (e *CastError) Unwrap() error {
	return e.Err
}

var validate = newValidator()

// newValidator reports fields by their json names so that messages match the
// documents clients send.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// ValidateArticle checks the required fields of a new article.
func ValidateArticle(a model.Article) error {
	return validateRecord("article", a)
}

// ValidateComment checks the required fields of a new comment.
func ValidateComment(c model.Comment) error {
	return validateRecord("comment", c)
}

func validateRecord(collection string, record interface{}) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %s: %w", collection, err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}

	return &ValidationError{Collection: collection, Fields: fields}
}
