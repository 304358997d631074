package errors

import "fmt"

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	// E.g. "tick price must be positive".
	Message string

	// Code (required) is the domain error code.
	// E.g. "invalid_tick".
	Code ErrorCode

	// Field (optional) is the related field the error occurred on, if any.
	Field string

	// Object (optional) is the related object the error occurred on, if any.
	Object interface{}
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message string, code ErrorCode, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// NewErrorDetailsWithObject creates a new ErrorDetails struct with an associated object.
func NewErrorDetailsWithObject(message string, code ErrorCode, field string, object interface{}) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
		Object:  object,
	}
}

// NewInvalidTick creates an ErrorDetails describing a rejected tick.
func NewInvalidTick(field, format string, args ...interface{}) *ErrorDetails {
	return NewErrorDetails(fmt.Sprintf(format, args...), ErrInvalidTick, field)
}

// NewUnknownInstrument creates an ErrorDetails for an unregistered instrument id.
func NewUnknownInstrument(instrumentID string) *ErrorDetails {
	return NewErrorDetails(
		fmt.Sprintf("instrument %s is not registered", instrumentID),
		ErrUnknownInstrument,
		"instrument_id",
	)
}

// NewStaleTick creates an ErrorDetails for a tick older than the open candle bucket.
func NewStaleTick(instrumentID, timeframe string) *ErrorDetails {
	return NewErrorDetails(
		fmt.Sprintf("tick for %s is older than the open %s bucket", instrumentID, timeframe),
		ErrStaleTick,
		"timestamp",
	)
}

// NewConfiguration creates an ErrorDetails for invalid startup or registration parameters.
func NewConfiguration(field, format string, args ...interface{}) *ErrorDetails {
	return NewErrorDetails(fmt.Sprintf(format, args...), ErrConfiguration, field)
}

// Error is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether a given `error` has a specific code.
func ErrorCodeEquals(err error, code ErrorCode) bool {
	errDetails, ok := err.(*ErrorDetails)
	if !ok {
		return false
	}

	return errDetails.Code == code
}
