package patterns

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateName   = errors.New("duplicate rule set name")
	ErrUnknownLanguage = errors.New("unknown language")
	ErrBadWeight       = errors.New("weight must be positive")
	ErrBadExtension    = errors.New("invalid extension")
)

// RuleError describes one defect in a rule table
type RuleError struct {
	Set     string
	Pattern string
	Err     error
}

func (e *RuleError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("rule set %s: pattern %q: %v", e.Set, e.Pattern, e.Err)
	}
	return fmt.Sprintf("rule set %s: %v", e.Set, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
