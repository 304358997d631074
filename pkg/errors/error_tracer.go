package errors

import "github.com/pkg/errors"

// StackTracer is satisfied by errors carrying a pkg/errors stack trace.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// ErrorTracer attaches a capture-site stack trace to errors coming from
// outside this module, so the logger can emit it alongside the message.
type ErrorTracer struct {
	Message string
	Err     error
}

// TracerFromError wraps err, capturing a stack trace here unless the
// error already carries one.
func TracerFromError(err error) *ErrorTracer {
	tracer := &ErrorTracer{Message: err.Error(), Err: err}
	if _, ok := err.(StackTracer); !ok {
		tracer.Err = errors.WithStack(err)
	}
	return tracer
}

func (e *ErrorTracer) Error() string {
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// StackTrace returns the wrapped error's stack trace, if any.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if withStack, ok := e.Unwrap().(StackTracer); ok {
		return withStack.StackTrace()
	}
	return nil
}
