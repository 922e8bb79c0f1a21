package products

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrInvalidMode  = errors.New("invalid editor mode")
	ErrMissingID    = errors.New("product id required")
)

// FieldErrors maps a form field name to a user-facing message.
type FieldErrors map[string]string

// InvalidFormError is returned by Serialize when the form cannot be turned
// into a payload.
type InvalidFormError struct {
	Fields FieldErrors
}

func (e *InvalidFormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid product form: " + strings.Join(keys, ", ")
}
