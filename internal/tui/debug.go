package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Event kinds shown in the debug panel
const (
	eventChange = "change"
	eventSelect = "select"
	eventFocus  = "focus"
	eventSubmit = "submit"
	eventError  = "error"
)

// debugEvent is one recorded field event
type debugEvent struct {
	at     time.Time
	kind   string
	field  string
	detail string
}

// DebugPanel keeps the most recent field events for display
type DebugPanel struct {
	enabled bool
	events  []debugEvent
	buffer  int // Max events to keep
	now     func() time.Time
}

// NewDebugPanel creates a new debug panel
func NewDebugPanel(enabled bool) DebugPanel {
	return DebugPanel{
		enabled: enabled,
		buffer:  100, // Keep last 100 events
		now:     time.Now,
	}
}

// IsEnabled returns whether the panel is shown
func (d *DebugPanel) IsEnabled() bool {
	return d.enabled
}

// Toggle shows or hides the panel. Events are recorded either way.
func (d *DebugPanel) Toggle() {
	d.enabled = !d.enabled
}

// Add records an event for a field
func (d *DebugPanel) Add(kind, fieldName, detail string) {
	d.events = append(d.events, debugEvent{
		at:     d.now(),
		kind:   kind,
		field:  fieldName,
		detail: detail,
	})
	if len(d.events) > d.buffer {
		d.events = d.events[len(d.events)-d.buffer:]
	}
}

// Lines returns the recorded events as plain text, oldest first
func (d *DebugPanel) Lines() []string {
	lines := make([]string, len(d.events))
	for i, e := range d.events {
		lines[i] = e.line()
	}
	return lines
}

func (e debugEvent) line() string {
	line := e.at.Format("15:04:05.000") + " [" + e.kind + "] " + e.field
	if e.detail != "" {
		line += " " + e.detail
	}
	return line
}

// Render renders the panel, newest events at the bottom
func (d *DebugPanel) Render(width, height int) string {
	if !d.enabled {
		return ""
	}

	// Title and borders
	contentHeight := height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	maxLen := width - 4
	if maxLen < 10 {
		maxLen = 10
	}

	start := 0
	if len(d.events) > contentHeight {
		start = len(d.events) - contentHeight
	}
	var lines []string
	for _, e := range d.events[start:] {
		line := ansi.Truncate(e.line(), maxLen, "…")
		if style, ok := DebugKindStyles[e.kind]; ok {
			line = style.Render(line)
		}
		lines = append(lines, line)
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	return DebugPanelStyle.
		Width(width).
		Render(DebugTitleStyle.Render("EVENTS") + "\n" + strings.Join(lines, "\n"))
}
