package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/parsing"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature whose backing service is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured on this server", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		fieldErrs      validator.ValidationErrors
		regErr         *parsing.ValidationError
		unavailableErr *ErrUnavailable
		extractionErr  *ingestion.ExtractionError
		parseErr       *parsing.ParseError
		apiErr         *parsing.APICallError
		tooLargeErr    *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs), errors.As(err, &regErr):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrResumeNotFound):
		return http.StatusNotFound
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, parsing.ErrNoText), errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &parseErr), errors.As(err, &apiErr):
		return http.StatusBadGateway
	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the error text safe to show API clients
func publicMessage(err error) string {
	var (
		parseErr *parsing.ParseError
		apiErr   *parsing.APICallError
	)
	switch {
	case errors.As(err, &parseErr), errors.As(err, &apiErr):
		return parsing.ModelFailureMessage
	case HTTPStatus(err) == http.StatusInternalServerError:
		return "internal server error"
	default:
		return err.Error()
	}
}
