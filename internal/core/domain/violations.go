package domain

import (
	"fmt"
	"strings"
)

// ViolationCode identifies one kind of journal entry validation failure.
type ViolationCode string

const (
	ViolationTooFewLines    ViolationCode = "TOO_FEW_LINES"
	ViolationUnknownAccount ViolationCode = "UNKNOWN_ACCOUNT"
	ViolationMixedSides     ViolationCode = "MIXED_DEBIT_CREDIT"
	ViolationEmptyLine      ViolationCode = "EMPTY_LINE"
	ViolationNegativeAmount ViolationCode = "NEGATIVE_AMOUNT"
	ViolationUnbalanced     ViolationCode = "UNBALANCED"
)

// Violation is one rule failure found while validating a journal entry.
// LineOrder is -1 for entry-level violations.
type Violation struct {
	Code      ViolationCode `json:"code"`
	LineOrder int           `json:"lineOrder"`
	Message   string        `json:"message"`
}

// ValidationErrors aggregates every violation found in a single validation
// pass; the entry is left untouched when it is non-empty.
type ValidationErrors struct {
	Violations []Violation `json:"violations"`
}

func (v *ValidationErrors) Error() string {
	msgs := make([]string, len(v.Violations))
	for i, violation := range v.Violations {
		msgs[i] = violation.Message
	}
	return fmt.Sprintf("entry validation failed: %s", strings.Join(msgs, "; "))
}

// Add appends a violation for the given line order (-1 for entry level).
func (v *ValidationErrors) Add(code ViolationCode, lineOrder int, format string, args ...any) {
	v.Violations = append(v.Violations, Violation{
		Code:      code,
		LineOrder: lineOrder,
		Message:   fmt.Sprintf(format, args...),
	})
}

// HasViolations reports whether any rule failed.
func (v *ValidationErrors) HasViolations() bool {
	return len(v.Violations) > 0
}
