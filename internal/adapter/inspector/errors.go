package inspector

import (
	"github.com/thushan/shifter/internal/core/domain"
)

func invalid(field, reason string) *domain.RequestValidationError {
	return &domain.RequestValidationError{Field: field, Reason: reason}
}

var (
	errNotJSON         = invalid("", "body is not valid JSON")
	errNotObject       = invalid("", "body must be a JSON object")
	errModelMissing    = invalid("model", "is required")
	errModelType       = invalid("model", "must be a string")
	errMessagesMissing = invalid("messages", "is required")
	errMessagesType    = invalid("messages", "must be an array")
)
