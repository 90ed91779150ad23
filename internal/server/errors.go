package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-screener/internal/extraction"
	"github.com/jonathan/resume-screener/internal/screening"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUploadTooLarge indicates an upload body over the configured limit
type ErrUploadTooLarge struct {
	Limit int64
}

func (e *ErrUploadTooLarge) Error() string {
	return fmt.Sprintf("upload exceeds the %d byte limit", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation     *ErrValidation
		tooLarge       *ErrUploadTooLarge
		maxBytes       *http.MaxBytesError
		jobNotFound    *screening.JobNotFoundError
		resumeNotFound *screening.ResumeNotFoundError
		invalidStage   *screening.InvalidStageError
		invalidInput   *screening.ValidationError
		unsupported    *extraction.UnsupportedFormatError
		extractFailed  *extraction.ExtractError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &tooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &jobNotFound), errors.As(err, &resumeNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &invalidStage), errors.As(err, &invalidInput),
		errors.As(err, &unsupported), errors.As(err, &extractFailed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
