package audit

import (
	"errors"
	"fmt"
)

// Expected failure kinds. Match them with errors.Is.
var (
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrAlreadyScanned    = errors.New("equipment already scanned in this audit")
	ErrRecordNotFound    = errors.New("record not found")
	ErrAuditNotFound     = fmt.Errorf("audit %w", ErrRecordNotFound)
	ErrValidation        = errors.New("validation failed")
)

// OutcomeError is an expected failure carrying a message meant to be shown
// to the user verbatim.
type OutcomeError struct {
	Kind    error
	Message string
}

func (e *OutcomeError) Error() string {
	return e.Message
}

func (e *OutcomeError) Unwrap() error {
	return e.Kind
}

func outcome(kind error, format string, args ...any) error {
	return &OutcomeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func isOutcome(err, kind error) bool {
	var oe *OutcomeError
	return errors.As(err, &oe) && errors.Is(oe.Kind, kind)
}
