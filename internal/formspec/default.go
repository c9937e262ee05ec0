package formspec

// IssueTracker represents the type of issue tracker to use
type IssueTracker string

const (
	TrackerBeads  IssueTracker = "beads"
	TrackerLinear IssueTracker = "linear"
)

// TrackerInfo describes an issue tracker option
type TrackerInfo struct {
	ID          IssueTracker
	Name        string
	Description string
	Available   bool
}

// AvailableTrackers returns all available issue trackers
func AvailableTrackers() []TrackerInfo {
	return []TrackerInfo{
		{
			ID:          TrackerBeads,
			Name:        "Beads",
			Description: "Local git-based issue tracking",
			Available:   true,
		},
		{
			ID:          TrackerLinear,
			Name:        "Linear",
			Description: "Cloud-based issue tracking",
			Available:   true,
		},
	}
}

// Default returns the built-in issue tracker setup form.
// Tracker options carry their TrackerInfo as select payload.
func Default() *Spec {
	trackers := AvailableTrackers()
	tracker := FieldSpec{
		Name:        "tracker",
		Label:       "Issue tracker",
		Placeholder: "Select a tracker",
		Dropdown:    true,
		Required:    true,
		HelperText:  "Where tasks are read from",
	}
	for _, t := range trackers {
		tracker.Options = append(tracker.Options, OptionSpec{
			Value: string(t.ID),
			Label: t.Name,
			Data:  t,
		})
	}

	return &Spec{
		Title: "Issue tracker setup",
		Fields: []FieldSpec{
			tracker,
			{
				Name:        "team",
				Label:       "Team",
				Placeholder: "My Team",
				MaxLength:   64,
			},
			{
				Name:           "api_key",
				Label:          "API key",
				Type:           "password",
				Placeholder:    "lin_api_...",
				Variant:        "outlined",
				StartAdornment: "🔑",
				MaxLength:      100,
				HelperText:     "Only needed for Linear",
			},
			{
				Name:        "notes",
				Label:       "Notes",
				Placeholder: "Anything the agent should know",
				Multiline:   true,
				Rows:        4,
			},
		},
	}
}
