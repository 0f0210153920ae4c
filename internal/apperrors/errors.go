package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInvalidRate indicates an exchange rate of zero or less was encountered.
// It is never silently coerced to 1.0.
var ErrInvalidRate = errors.New("exchange rate must be positive")

// ErrDocumentFinalized indicates an attempt to mutate a document whose totals
// are already locked in (sent/confirmed/approved). Corrections require a new
// revision.
var ErrDocumentFinalized = errors.New("document is finalized and cannot be modified")

// AppError wraps an underlying error with an HTTP-ish status code and a
// caller-facing message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given status code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that unwraps to ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// MissingExchangeRateError is returned when no usable exchange rate exists for
// a currency pair at a reference date, in either direction. It carries the
// structured context callers need to present an actionable message; document
// creation must abort when it is raised.
type MissingExchangeRateError struct {
	FromCurrencyCode string
	ToCurrencyCode   string
	Date             time.Time
}

func (e *MissingExchangeRateError) Error() string {
	return fmt.Sprintf("no exchange rate available from %s to %s on %s",
		e.FromCurrencyCode, e.ToCurrencyCode, e.Date.Format("2006-01-02"))
}

// Is makes errors.Is(err, ErrNotFound) succeed for missing rates, so generic
// not-found handling still applies where the typed context is not needed.
func (e *MissingExchangeRateError) Is(target error) bool {
	return target == ErrNotFound
}

// NewMissingExchangeRateError creates a MissingExchangeRateError for the pair and date.
func NewMissingExchangeRateError(fromCode, toCode string, date time.Time) *MissingExchangeRateError {
	return &MissingExchangeRateError{FromCurrencyCode: fromCode, ToCurrencyCode: toCode, Date: date}
}
