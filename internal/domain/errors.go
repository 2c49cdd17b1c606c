package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("time slot conflict")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
)

// Validationf builds an error matching ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf builds an error matching ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// IllegalTransitionf builds an error matching ErrIllegalTransition for guards that are not a plain status change.
func IllegalTransitionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalTransition, fmt.Sprintf(format, args...))
}

// ConflictError lists the calendar events that overlap a proposed interval.
type ConflictError struct {
	Events []ConflictingEvent
}

func (e *ConflictError) Error() string {
	if len(e.Events) == 0 {
		return ErrConflict.Error()
	}
	parts := make([]string, 0, len(e.Events))
	for _, ev := range e.Events {
		parts = append(parts, fmt.Sprintf("%s#%d", ev.Kind, ev.ID))
	}
	return fmt.Sprintf("%s with %s", ErrConflict.Error(), strings.Join(parts, ", "))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// TransitionError reports a guard violation of the appointment lifecycle.
type TransitionError struct {
	From AppointmentStatus
	To   AppointmentStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition.Error(), e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}
