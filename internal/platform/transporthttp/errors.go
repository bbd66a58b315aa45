package transporthttp

import (
	"net/http"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

// statusForCode maps a matching.ErrorCode to its HTTP status, per
// spec.md §7's error taxonomy.
func statusForCode(code matching.ErrorCode) int {
	switch code {
	case matching.CodeInvalidRequest:
		return http.StatusBadRequest
	case matching.CodeBusy:
		return http.StatusServiceUnavailable
	case matching.CodeQuotaExhausted:
		return http.StatusTooManyRequests
	case matching.CodeUnknownAddress:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
