package application

import (
	"errors"
	"fmt"
	"log"

	"github.com/linskybing/formflow/pkg/validation"
)

var (
	ErrFormNotFound         = errors.New("form not found")
	ErrSubmissionNotFound   = errors.New("submission not found for this form")
	ErrNoComponents         = errors.New("form has no components to answer")
	ErrEmptyAnswers         = errors.New("answers payload is required")
	ErrUnknownComponent     = validation.ErrUnknownComponent
	ErrSchemaChanged        = errors.New("form components changed while the submission was being saved")
	ErrTitleRequired        = errors.New("form title is required")
	ErrInvalidComponent     = errors.New("invalid component")
	ErrConfirmationRequired = errors.New("confirmation required before deleting form")
	ErrPersistence          = errors.New("persistence failure")
)

// domainErrors pass through persistence wrapping untouched.
var domainErrors = []error{
	ErrFormNotFound,
	ErrSubmissionNotFound,
	ErrNoComponents,
	ErrSchemaChanged,
	ErrInvalidComponent,
}

// persistenceError logs err and wraps it as ErrPersistence unless it is
// already a domain error.
func persistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range domainErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	log.Printf("[ERROR] %s: %v", op, err)
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
