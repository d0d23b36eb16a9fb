package domain

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorKind discriminates domain failures. Handlers map kinds to HTTP
// status codes through StatusCode; services never reference HTTP directly.
type ErrorKind string

const (
	KindValidation        ErrorKind = "VALIDATION"
	KindAuthentication    ErrorKind = "AUTHENTICATION"
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"
	KindOutOfStock        ErrorKind = "OUT_OF_STOCK"
	KindDuplicate         ErrorKind = "DUPLICATE"
	KindConflict          ErrorKind = "CONFLICT"
	KindInternal          ErrorKind = "INTERNAL"
)

// Error is the single domain error type. Two errors match with errors.Is
// when their kinds are equal, so callers compare against the sentinels
// below regardless of message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Kind sentinels for errors.Is checks.
var (
	ErrValidation        = &Error{Kind: KindValidation, Message: "invalid input"}
	ErrAuthentication    = &Error{Kind: KindAuthentication, Message: "unauthorized"}
	ErrForbidden         = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds, Message: "insufficient funds"}
	ErrOutOfStock        = &Error{Kind: KindOutOfStock, Message: "out of stock"}
	ErrDuplicate         = &Error{Kind: KindDuplicate, Message: "duplicate entry"}
	ErrConflict          = &Error{Kind: KindConflict, Message: "concurrent modification"}
	ErrInternal          = &Error{Kind: KindInternal, Message: "internal server error"}
)

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InsufficientFunds(message string) *Error {
	return &Error{Kind: KindInsufficientFunds, Message: message}
}

func OutOfStock(message string) *Error {
	return &Error{Kind: KindOutOfStock, Message: message}
}

func Duplicate(message string) *Error {
	return &Error{Kind: KindDuplicate, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// statusByKind is the kind-to-HTTP lookup used by the error handler.
var statusByKind = map[ErrorKind]int{
	KindValidation:        fiber.StatusBadRequest,
	KindAuthentication:    fiber.StatusUnauthorized,
	KindForbidden:         fiber.StatusForbidden,
	KindNotFound:          fiber.StatusNotFound,
	KindInsufficientFunds: fiber.StatusPaymentRequired,
	KindOutOfStock:        fiber.StatusConflict,
	KindDuplicate:         fiber.StatusConflict,
	KindConflict:          fiber.StatusConflict,
	KindInternal:          fiber.StatusInternalServerError,
}

// StatusCode returns the HTTP status for err. Unknown errors map to 500.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		if code, found := statusByKind[e.Kind]; found {
			return code
		}
	}
	return fiber.StatusInternalServerError
}
