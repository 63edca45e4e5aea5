// file: internals/features/school/examination/validation/result.go
package validation

import (
	"errors"
	"strings"
)

// FieldError is one rule violation tied to the input field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the single result shape every validator in this package returns.
// Aggregate validators collect all violations so the caller sees every
// problem at once instead of just the first.
type Result struct {
	Errors []FieldError `json:"errors"`
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

// Err flattens the violations into one error, or nil when the result is OK.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return errors.New(strings.Join(msgs, "; "))
}

func (r *Result) add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// merge folds another result's violations into r.
func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
}
