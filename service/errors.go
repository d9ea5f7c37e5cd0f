package service

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindScheduleConflict
	KindPastStartTime
	KindAlreadyElapsed
	KindLinkedSessionsExist
	KindConfirmationRequired
	KindTheaterLinked
	KindExternalService
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindScheduleConflict:
		return "ScheduleConflict"
	case KindPastStartTime:
		return "PastStartTime"
	case KindAlreadyElapsed:
		return "AlreadyElapsed"
	case KindLinkedSessionsExist:
		return "LinkedSessionsExist"
	case KindConfirmationRequired:
		return "ConfirmationRequired"
	case KindTheaterLinked:
		return "TheaterLinked"
	case KindExternalService:
		return "ExternalServiceError"
	case KindValidation:
		return "ValidationError"
	}
	return "Unknown"
}

// Error is a business-rule failure. Its Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && !strings.Contains(e.Message, e.Err.Error()) {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so callers can test against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrScheduleConflict     = &Error{Kind: KindScheduleConflict}
	ErrPastStartTime        = &Error{Kind: KindPastStartTime}
	ErrAlreadyElapsed       = &Error{Kind: KindAlreadyElapsed}
	ErrLinkedSessionsExist  = &Error{Kind: KindLinkedSessionsExist}
	ErrConfirmationRequired = &Error{Kind: KindConfirmationRequired}
	ErrTheaterLinked        = &Error{Kind: KindTheaterLinked}
	ErrExternalService      = &Error{Kind: KindExternalService}
	ErrValidation           = &Error{Kind: KindValidation}
)

func fail(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or 0 for infrastructure failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
