package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// ErrInvalidTick represents a malformed or out-of-order tick. The tick is
	// dropped and ingestion continues.
	ErrInvalidTick ErrorCode = "invalid_tick"
	// ErrUnknownInstrument represents an operation referencing an instrument
	// that was never registered.
	ErrUnknownInstrument ErrorCode = "unknown_instrument"
	// ErrStaleTick represents a tick whose bucket is older than the currently
	// open candle. The tick is dropped.
	ErrStaleTick ErrorCode = "stale_tick"
	// ErrDuplicateInstrument represents a registration attempt for an
	// instrument id that already exists.
	ErrDuplicateInstrument ErrorCode = "duplicate_instrument"
	// ErrConfiguration represents invalid rule, timeframe or instrument
	// parameters. Surfaced at startup or registration, never mid-stream.
	ErrConfiguration ErrorCode = "configuration_error"
	// ErrSubscriptionClosed represents a delivery attempt on a torn-down
	// subscription.
	ErrSubscriptionClosed ErrorCode = "subscription_closed"
)

// Severity represents the severity level of an error.
type Severity string

const (
	// SeverityCritical indicates a critical error that requires immediate attention.
	SeverityCritical Severity = "critical"
	// SeverityHigh indicates a high severity error that should be addressed promptly.
	SeverityHigh Severity = "high"
	// SeverityMedium indicates a medium severity error that should be addressed in due course.
	SeverityMedium Severity = "medium"
	// SeverityLow indicates a low severity error that can be addressed at a later time.
	SeverityLow Severity = "low"
)
