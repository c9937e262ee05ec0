package field

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateOption is returned when two options share a value.
	ErrDuplicateOption = errors.New("duplicate option value")
	// ErrEmptyOptionValue is returned when an option has no value.
	ErrEmptyOptionValue = errors.New("empty option value")
)

// Option is a single entry of a dropdown's option list.
type Option struct {
	Value string // Identity key, unique within one option set
	Label string // Text shown in the list and in the selector once chosen
	Icon  string // Optional glyph rendered before the label
	Data  any    // Caller payload, handed back untouched on select
}

// display returns the option text as it appears in the list
func (o Option) display() string {
	if o.Icon != "" {
		return o.Icon + " " + o.Label
	}
	return o.Label
}

// ValidateOptions checks that every option has a non-empty, unique value.
func ValidateOptions(opts []Option) error {
	seen := make(map[string]struct{}, len(opts))
	for i, o := range opts {
		if o.Value == "" {
			return fmt.Errorf("option %d (%q): %w", i, o.Label, ErrEmptyOptionValue)
		}
		if _, ok := seen[o.Value]; ok {
			return fmt.Errorf("option %q: %w", o.Value, ErrDuplicateOption)
		}
		seen[o.Value] = struct{}{}
	}
	return nil
}
