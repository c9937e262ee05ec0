package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clive/inputkit/internal/config"
	"github.com/clive/inputkit/internal/field"
	"github.com/clive/inputkit/internal/formspec"
)

// run executes cmd and returns the messages it produced. Commands that do not
// return promptly (cursor blink timers) are dropped.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(50 * time.Millisecond):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, run(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// send updates m with msg and feeds back every form message its commands produce.
// Whatever else the commands returned is passed back to the caller.
func send(m Model, msg tea.Msg) (Model, []tea.Msg) {
	next, cmd := m.Update(msg)
	m = next.(Model)

	var out []tea.Msg
	for _, produced := range run(cmd) {
		switch produced.(type) {
		case fieldChangedMsg, fieldSelectedMsg, configSavedMsg:
			var more []tea.Msg
			m, more = send(m, produced)
			out = append(out, more...)
		default:
			out = append(out, produced)
		}
	}
	return m, out
}

func hasQuit(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewRootModel(formspec.Default(), config.DefaultConfig(), nil)
	m.saveConfig = func(*config.Config) error {
		t.Error("unexpected save")
		return nil
	}
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func mustField(t *testing.T, m Model, name string) field.Model {
	t.Helper()
	f, ok := m.Field(name)
	if !ok {
		t.Fatalf("no field %q", name)
	}
	return f
}

func TestNewRootModelPrefill(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DefaultVariant = "filled"
	cfg.LastValues = map[string]string{"team": "Core", "tracker": "linear"}

	m := NewRootModel(formspec.Default(), cfg, nil)

	if got := m.Focused(); got != "tracker" {
		t.Errorf("Focused() = %q, want %q", got, "tracker")
	}
	if got := mustField(t, m, "team").Value(); got != "Core" {
		t.Errorf("team value = %q, want %q", got, "Core")
	}
	if got := m.Values()["tracker"]; got != "linear" {
		t.Errorf("tracker value = %q, want %q", got, "linear")
	}

	tests := []struct {
		name string
		want field.Variant
	}{
		{"team", field.VariantFilled},
		{"api_key", field.VariantOutlined}, // set by the form itself
		{"notes", field.VariantFilled},
	}
	for _, tt := range tests {
		if got := mustField(t, m, tt.name).Variant(); got != tt.want {
			t.Errorf("%s variant = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNewRootModelIgnoresBadDefaultVariant(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DefaultVariant = "dashed"

	m := NewRootModel(formspec.Default(), cfg, nil)
	if got := mustField(t, m, "team").Variant(); got != field.VariantStandard {
		t.Errorf("team variant = %q, want %q", got, field.VariantStandard)
	}
}

func TestTabSkipsDisabledFields(t *testing.T) {
	spec := &formspec.Spec{Fields: []formspec.FieldSpec{
		{Name: "a"},
		{Name: "b", Disabled: true},
		{Name: "c"},
	}}
	m := NewRootModel(spec, config.DefaultConfig(), nil)

	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyTab, "c"},
		{tea.KeyTab, "a"},
		{tea.KeyShiftTab, "c"},
		{tea.KeyShiftTab, "a"},
	}
	for i, s := range steps {
		m, _ = send(m, keyMsg(s.key))
		if got := m.Focused(); got != s.want {
			t.Fatalf("step %d: Focused() = %q, want %q", i, got, s.want)
		}
	}
}

func TestEscClosesDropdownBeforeQuitting(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(m, keyMsg(tea.KeyEnter))
	if !mustField(t, m, "tracker").State().IsOpen() {
		t.Fatal("expected tracker list to open")
	}

	m, msgs := send(m, keyMsg(tea.KeyEsc))
	if hasQuit(msgs) || m.quitting {
		t.Fatal("esc that closed the list also reached the form")
	}
	if mustField(t, m, "tracker").State().IsOpen() {
		t.Fatal("expected tracker list to close")
	}

	_, msgs = send(m, keyMsg(tea.KeyEsc))
	if !hasQuit(msgs) {
		t.Error("expected second esc to quit")
	}
}

func TestSelectUpdatesValuesAndStatus(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(m, keyMsg(tea.KeyEnter))
	m, _ = send(m, keyMsg(tea.KeyDown))
	m, _ = send(m, keyMsg(tea.KeyEnter))

	if got := m.Values()["tracker"]; got != "linear" {
		t.Errorf("tracker value = %q, want %q", got, "linear")
	}
	if !strings.Contains(m.status, "Linear") || m.statusErr {
		t.Errorf("status = %q (err=%v), want tracker description", m.status, m.statusErr)
	}
	f := mustField(t, m, "tracker")
	if f.State().IsOpen() || !f.State().HasInteracted() {
		t.Errorf("tracker state = %+v, want closed and interacted", f.State())
	}
}

func TestTypingUpdatesValues(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(m, keyMsg(tea.KeyTab))
	m = typeText(m, "ab")

	if got := m.Values()["team"]; got != "ab" {
		t.Errorf("team value = %q, want %q", got, "ab")
	}
	if got := m.Values()["tracker"]; got != "" {
		t.Errorf("tracker value = %q, want empty", got)
	}
}

func TestSubmitRequiresFields(t *testing.T) {
	m := newTestModel(t)

	m, msgs := send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if hasQuit(msgs) || m.Submitted() {
		t.Fatal("form submitted with a required field empty")
	}
	if !m.statusErr || !strings.Contains(m.status, "tracker") {
		t.Errorf("status = %q, want the missing field named", m.status)
	}
	if !mustField(t, m, "tracker").Error() {
		t.Error("expected tracker to be flagged")
	}

	// Choosing a value clears the flag
	m, _ = send(m, keyMsg(tea.KeyEnter))
	m, _ = send(m, keyMsg(tea.KeyEnter))
	if mustField(t, m, "tracker").Error() {
		t.Error("tracker still flagged after selecting a value")
	}
}

func TestSubmitSavesAndQuits(t *testing.T) {
	m := newTestModel(t)

	var saved *config.Config
	m.saveConfig = func(cfg *config.Config) error {
		saved = cfg
		return nil
	}

	m, _ = send(m, keyMsg(tea.KeyEnter))
	m, _ = send(m, keyMsg(tea.KeyEnter))
	m, _ = send(m, keyMsg(tea.KeyTab))
	m, _ = send(m, keyMsg(tea.KeyTab))
	m = typeText(m, "secret")

	m, msgs := send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !hasQuit(msgs) || !m.Submitted() {
		t.Fatalf("expected submit to quit, submitted=%v status=%q", m.Submitted(), m.status)
	}
	if saved == nil {
		t.Fatal("config was not saved")
	}
	if got := saved.LastValues["tracker"]; got != "beads" {
		t.Errorf("saved tracker = %q, want %q", got, "beads")
	}
	if _, ok := saved.LastValues["api_key"]; ok {
		t.Error("password value was persisted")
	}
	if got := m.Values()["api_key"]; got != "secret" {
		t.Errorf("api_key value = %q, want %q", got, "secret")
	}
}

func TestSubmitSaveError(t *testing.T) {
	m := newTestModel(t)
	m.saveConfig = func(*config.Config) error {
		return errors.New("disk full")
	}

	m, _ = send(m, keyMsg(tea.KeyEnter))
	m, _ = send(m, keyMsg(tea.KeyEnter))
	m, msgs := send(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if hasQuit(msgs) || m.Submitted() {
		t.Fatal("form quit after a failed save")
	}
	if !m.statusErr || !strings.Contains(m.status, "disk full") {
		t.Errorf("status = %q, want save error", m.status)
	}
}

func TestFieldAt(t *testing.T) {
	m := newTestModel(t)
	h0 := mustField(t, m, "tracker").Height()

	tests := []struct {
		y         int
		wantIndex int
		wantLocal int
	}{
		{0, -1, 0},
		{headerRows, 0, 0},
		{headerRows + h0 - 1, 0, h0 - 1},
		{headerRows + h0, -1, 0}, // blank row between fields
		{headerRows + h0 + 1, 1, 0},
	}
	for _, tt := range tests {
		i, local := m.fieldAt(tt.y)
		if i != tt.wantIndex || local != tt.wantLocal {
			t.Errorf("fieldAt(%d) = (%d, %d), want (%d, %d)", tt.y, i, local, tt.wantIndex, tt.wantLocal)
		}
	}
}

// rowOf returns the field-local row of the first region of the given kind
func rowOf(t *testing.T, f field.Model, kind field.RegionKind, index int) int {
	t.Helper()
	for y := 0; y < f.Height(); y++ {
		r := f.HitTest(y)
		if r.Kind == kind && (kind != field.RegionOption || r.Index == index) {
			return y
		}
	}
	t.Fatalf("no row for region %v/%d", kind, index)
	return -1
}

func click(y int) tea.MouseMsg {
	return tea.MouseMsg{Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestMouseSelectsOption(t *testing.T) {
	m := newTestModel(t)

	selector := rowOf(t, mustField(t, m, "tracker"), field.RegionSelector, 0)
	m, _ = send(m, click(headerRows+selector))
	tracker := mustField(t, m, "tracker")
	if !tracker.State().IsOpen() {
		t.Fatal("expected click on selector to open the list")
	}

	option := rowOf(t, tracker, field.RegionOption, 1)
	m, _ = send(m, click(headerRows+option))
	if got := m.Values()["tracker"]; got != "linear" {
		t.Errorf("tracker value = %q, want %q", got, "linear")
	}
	if mustField(t, m, "tracker").State().IsOpen() {
		t.Error("expected list to close after selecting")
	}
}

func TestMouseClickMovesFocus(t *testing.T) {
	m := newTestModel(t)

	tracker := mustField(t, m, "tracker")
	teamTop := headerRows + tracker.Height() + 1
	input := rowOf(t, mustField(t, m, "team"), field.RegionInput, 0)

	m, _ = send(m, click(teamTop+input))
	if got := m.Focused(); got != "team" {
		t.Errorf("Focused() = %q, want %q", got, "team")
	}
	if mustField(t, m, "tracker").Focused() {
		t.Error("tracker still focused")
	}
}

func TestViewRendersForm(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	for _, want := range []string{"Issue tracker setup", "Issue tracker *", "0/4 filled", "Notes"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "EVENTS") {
		t.Error("debug panel shown while disabled")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if !strings.Contains(m.View(), "EVENTS") {
		t.Error("expected debug panel after ctrl+d")
	}
}

func TestMouseClickOnCroppedView(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, keyMsg(tea.KeyEnter))

	// Shrink the terminal so the top rows of the open form are cut off
	const cropped = 3
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: lipgloss.Height(m.View()) - cropped})
	if got := m.scrollOffset(); got != cropped {
		t.Fatalf("scrollOffset() = %d, want %d", got, cropped)
	}

	tracker := mustField(t, m, "tracker")
	if !tracker.State().IsOpen() {
		t.Fatal("expected tracker list to stay open")
	}
	option := rowOf(t, tracker, field.RegionOption, 1)
	m, _ = send(m, click(headerRows+option-cropped))

	if got := m.Values()["tracker"]; got != "linear" {
		t.Errorf("tracker value = %q, want %q", got, "linear")
	}
	if mustField(t, m, "tracker").State().IsOpen() {
		t.Error("expected list to close after selecting")
	}
}

func TestHelpShowsOpenListKeys(t *testing.T) {
	m := newTestModel(t)

	if strings.Contains(m.helpView(), "next option") {
		t.Errorf("list keys shown while closed:\n%s", m.helpView())
	}

	m, _ = send(m, keyMsg(tea.KeyEnter))
	help := m.helpView()
	for _, want := range []string{"next option", "choose", "close list"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
}

func TestWithNotice(t *testing.T) {
	m := newTestModel(t).WithNotice("first run")
	if !strings.Contains(m.View(), "first run") || m.statusErr {
		t.Errorf("notice not shown as info status:\n%s", m.View())
	}
}

func newPlainModel(t *testing.T, cfg *config.Config) Model {
	t.Helper()
	spec := &formspec.Spec{Title: "Invite", Fields: []formspec.FieldSpec{
		{Name: "code", Label: "Invite code", Plain: true, Required: true},
		{Name: "size", Label: "Size", Dropdown: true, Options: []formspec.OptionSpec{
			{Value: "s", Label: "Small"},
		}},
	}}
	m := NewRootModel(spec, cfg, nil)
	m.saveConfig = func(*config.Config) error { return nil }
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestPlainFieldInForm(t *testing.T) {
	m := newPlainModel(t, config.DefaultConfig())

	if _, ok := m.Field("code"); ok {
		t.Error("plain text box returned as a field")
	}
	if _, ok := m.TextField("code"); !ok {
		t.Fatal("expected a plain text box named code")
	}
	if !strings.Contains(m.renderStatusBar(), "plain") {
		t.Errorf("status bar = %q, want the plain kind", m.renderStatusBar())
	}

	// Plain boxes show the required message right away
	m, msgs := send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if hasQuit(msgs) {
		t.Fatal("form submitted with the code empty")
	}
	if !strings.Contains(m.View(), requiredHint) {
		t.Errorf("view missing required message:\n%s", m.View())
	}

	m = typeText(m, "xyz")
	if got := m.Values()["code"]; got != "xyz" {
		t.Errorf("code value = %q, want %q", got, "xyz")
	}
	if strings.Contains(m.View(), requiredHint) {
		t.Error("required message still shown after typing")
	}

	_, msgs = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !hasQuit(msgs) {
		t.Error("expected submit to quit once the code is filled")
	}
}

func TestPlainFieldPrefillAndEsc(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LastValues = map[string]string{"code": "abc"}
	m := newPlainModel(t, cfg)

	tf, _ := m.TextField("code")
	if tf.Value() != "abc" {
		t.Errorf("code value = %q, want %q", tf.Value(), "abc")
	}

	// A text box never claims esc
	_, msgs := send(m, keyMsg(tea.KeyEsc))
	if !hasQuit(msgs) {
		t.Error("expected esc on a plain box to reach the form")
	}
}
