package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	// KindValidation is a client-side check that failed before any request.
	KindValidation Kind = "validation"
	// KindRemote is a non-2xx answer from the backend carrying a detail message.
	KindRemote Kind = "remote"
	// KindTransport covers thrown requests and bodies that are not JSON.
	KindTransport Kind = "transport"
	KindAuth      Kind = "auth"
	KindBusy      Kind = "busy"
)

type Error struct {
	Kind Kind
	// SafeMessage is what the user sees in a toast or inline error.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
	// Status is the HTTP status for KindRemote, zero otherwise.
	Status int
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindValidation:
		return "Please check the highlighted fields."
	case KindRemote:
		return "The server rejected the request."
	case KindTransport:
		return "Could not reach the server. Please try again."
	case KindAuth:
		return "Authentication failed. Please sign in again."
	case KindBusy:
		return "Another request is still running."
	default:
		return "Request failed."
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func Validation(msg string) error {
	return New(KindValidation, msg, nil)
}

// Remote builds a backend rejection. An empty detail falls back to the
// generic message for the kind.
func Remote(status int, detail string) error {
	msg := strings.TrimSpace(detail)
	if msg == "" {
		msg = defaultSafeMessage(KindRemote)
	}
	return &Error{Kind: KindRemote, SafeMessage: msg, Status: status}
}

func Transport(err error) error {
	return New(KindTransport, "", err)
}

func Auth(msg string, cause error) error {
	return New(KindAuth, msg, cause)
}

func Busy(action string) error {
	return New(KindBusy, "", errors.New(action+" already in flight"))
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
