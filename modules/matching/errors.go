package matching

import "errors"

// Sentinel errors, following the teacher repo's errors.Is dispatch
// pattern (modules/jobs/model/errors.go in the upstream codebase).
var (
	// ErrInvalidRequest is returned when a MatchRequest fails
	// validation before any scoring takes place.
	ErrInvalidRequest = errors.New("invalid match request")

	// ErrUnknownListeningReason is returned when a listening reason
	// override is not a member of the closed enumeration.
	ErrUnknownListeningReason = errors.New("unknown listening reason")

	// ErrBusy is returned when the engine's concurrent-request limit
	// is exceeded; the caller should retry, not treat it as failure.
	ErrBusy = errors.New("engine at capacity")

	// ErrMatrixInvalid is a startup-only error: a configured weight
	// matrix does not sum to 1.000 within tolerance.
	ErrMatrixInvalid = errors.New("weight matrix does not sum to 1.000")

	// ErrQuotaExhausted signals the geo provider's rate/day budget is
	// spent; callers degrade to cache-only behavior rather than block.
	ErrQuotaExhausted = errors.New("geo provider quota exhausted")
)

// ErrorCode is a closed, wire-stable identifier for the error
// taxonomy in spec.md §7.
type ErrorCode string

const (
	CodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	CodeBusy            ErrorCode = "BUSY"
	CodeQuotaExhausted  ErrorCode = "QUOTA_EXHAUSTED"
	CodeUnknownAddress  ErrorCode = "UNKNOWN_ADDRESS"
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps an error to its wire-stable code.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrUnknownListeningReason):
		return CodeInvalidRequest
	case errors.Is(err, ErrBusy):
		return CodeBusy
	case errors.Is(err, ErrQuotaExhausted):
		return CodeQuotaExhausted
	default:
		return CodeInternalError
	}
}
