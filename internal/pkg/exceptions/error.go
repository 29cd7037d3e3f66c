package exceptions

import (
	"errors"
	"fmt"
	"hospital-service/internal/pkg/constvars"
	"runtime"
)

// Kind classifies an error for callers independently of its HTTP status.
type Kind string

const (
	KindValidation      Kind = "VALIDATION_ERROR"
	KindNotFound        Kind = "NOT_FOUND"
	KindClosedDay       Kind = "CLOSED_DAY"
	KindSlotTaken       Kind = "SLOT_TAKEN"
	KindAuthorization   Kind = "AUTHORIZATION_ERROR"
	KindStateTransition Kind = "STATE_TRANSITION_ERROR"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindInternal        Kind = "INTERNAL_ERROR"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	Kind          Kind       `json:"error_kind"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	cause         error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	loc := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, loc.File, loc.Line, loc.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// BuildNewCustomError wraps err (may be nil) with a status code, a client-safe
// message and a developer message. The kind is derived from the status code.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return buildCustomError(kindFromStatus(statusCode), err, statusCode, clientMessage, devMessage, 3)
}

func buildKindError(kind Kind, err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return buildCustomError(kind, err, statusCode, clientMessage, devMessage, 4)
}

func buildCustomError(kind Kind, err error, statusCode int, clientMessage, devMessage string, skip int) *CustomError {
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		Kind:          kind,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(skip)},
		cause:         err,
	}
}

// KindOf reports the kind of err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func kindFromStatus(statusCode int) Kind {
	switch statusCode {
	case constvars.StatusBadRequest:
		return KindValidation
	case constvars.StatusUnauthorized:
		return KindUnauthenticated
	case constvars.StatusForbidden:
		return KindAuthorization
	case constvars.StatusNotFound:
		return KindNotFound
	default:
		return KindInternal
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	return Location{
		File:         file,
		Line:         line,
		FunctionName: runtime.FuncForPC(pc).Name(),
	}
}
