package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownScope is returned when a scope name cannot be parsed.
	ErrUnknownScope = errors.New("unknown scope")

	// ErrUnsupportedValueKind is returned when a property value carries a kind
	// that is not one of the supported scalar kinds.
	ErrUnsupportedValueKind = errors.New("unsupported property value kind")
)

// InvariantViolation is the panic value raised when a caller breaks one of the
// record graph invariants: scope reassignment, zone or scope mismatch between
// related records, or a structural rule of a scope. It signals a programming
// error and is never converted into a recoverable result.
type InvariantViolation struct {
	Rule   string
	Detail string
}

func (v *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation (%s): %s", v.Rule, v.Detail)
}

// Invariant rule names carried by [InvariantViolation].
const (
	RuleScopeReassignment = "scope reassignment"
	RuleScopeMismatch     = "scope mismatch"
	RuleZoneMismatch      = "zone mismatch"
	RuleStructure         = "scope structure"
	RuleUnreachable       = "unreachable state"
)

// Violate panics with an [*InvariantViolation] for rule.
func Violate(rule, format string, args ...any) {
	panic(&InvariantViolation{Rule: rule, Detail: fmt.Sprintf(format, args...)})
}
