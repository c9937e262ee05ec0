package field

// InteractionState is the local state of one field instance.
// The zero value is the initial state: closed and untouched.
type InteractionState struct {
	open       bool // option list visible
	interacted bool // at least one change/select since creation; never cleared
}

// IsOpen reports whether the option list is visible.
func (s InteractionState) IsOpen() bool {
	return s.open
}

// HasInteracted reports whether the user has changed or selected anything yet.
func (s InteractionState) HasInteracted() bool {
	return s.interacted
}

// Change records a value edit. Ignored while disabled.
func (s *InteractionState) Change(disabled bool) bool {
	if disabled {
		return false
	}
	s.interacted = true
	return true
}

// ToggleSelector flips the option list. Only dropdowns that are enabled react.
func (s *InteractionState) ToggleSelector(dropdown, disabled bool) bool {
	if !dropdown || disabled {
		return false
	}
	s.interacted = true
	s.open = !s.open
	return true
}

// SelectOption records a pick from the open list and closes it.
func (s *InteractionState) SelectOption() bool {
	if !s.open {
		return false
	}
	s.interacted = true
	s.open = false
	return true
}

// Close hides the option list without counting as an interaction.
func (s *InteractionState) Close() bool {
	if !s.open {
		return false
	}
	s.open = false
	return true
}

// ShowHelper reports whether helper text should be rendered this frame.
func (s InteractionState) ShowHelper(errorFlag bool, helperText string) bool {
	return s.interacted && (errorFlag || helperText != "")
}
