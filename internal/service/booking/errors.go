package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// ConflictError reports that a requested interval overlaps an existing
// occupying appointment of the professional. It is raised before anything is
// persisted.
type ConflictError struct {
	ProfessionalID   uuid.UUID
	ProfessionalName string
	Start            time.Time
	End              time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"professional %s already has an appointment between %s and %s",
		e.ProfessionalName,
		e.Start.Format(time.RFC3339),
		e.End.Format(time.RFC3339),
	)
}
