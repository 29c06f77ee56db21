package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/promptfy/internal/clipboard"
	"github.com/josephgoksu/promptfy/internal/methodology"
	"github.com/josephgoksu/promptfy/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackedEvents []string

func (t *trackedEvents) Track(event string, _ telemetry.Properties) { *t = append(*t, event) }
func (t *trackedEvents) Close() error                               { return nil }

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keySubmit   = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestForm(t *testing.T, id methodology.ID, prefill bool, pub clipboard.Publisher) (FormModel, *trackedEvents) {
	t.Helper()
	def, err := methodology.Lookup(id)
	require.NoError(t, err)
	events := &trackedEvents{}
	if pub == nil {
		pub = clipboard.PublisherFunc(func(string) error { return nil })
	}
	return NewFormModel(def, FormOptions{
		Prefill:      prefill,
		Publisher:    pub,
		Telemetry:    events,
		GlamourStyle: "notty",
	}), events
}

func send(t *testing.T, m FormModel, msg tea.Msg) (FormModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	fm, ok := next.(FormModel)
	require.True(t, ok)
	return fm, cmd
}

func TestFormModel_Prefill(t *testing.T) {
	m, _ := newTestForm(t, methodology.AgentPlanning, true, nil)
	assert.Equal(t, m.Def.ExampleInput(), m.Values())

	m, _ = newTestForm(t, methodology.AgentPlanning, false, nil)
	assert.Equal(t, m.Def.EmptyInput(), m.Values())
}

func TestFormModel_HeadersShowTitlesNotAssets(t *testing.T) {
	for _, def := range methodology.Default().All() {
		t.Run(string(def.ID), func(t *testing.T) {
			m, _ := newTestForm(t, def.ID, true, nil)
			assert.Contains(t, m.View(), def.FormTitle)
			assert.NotContains(t, m.View(), ".svg")

			m, _ = send(t, m, keySubmit)
			require.Equal(t, StatePreview, m.State)
			assert.Contains(t, m.View(), def.Name+" prompt")
			assert.NotContains(t, m.View(), ".svg")
		})
	}
}

func TestFormModel_FocusWraps(t *testing.T) {
	m, _ := newTestForm(t, methodology.Diverge, false, nil)
	require.Len(t, m.Inputs, 4)
	assert.Equal(t, 0, m.Focus)

	m, _ = send(t, m, keyShiftTab)
	assert.Equal(t, 3, m.Focus)
	assert.True(t, m.Inputs[3].Focused())
	assert.False(t, m.Inputs[0].Focused())

	m, _ = send(t, m, keyTab)
	assert.Equal(t, 0, m.Focus)
}

func TestFormModel_TypingEditsFocusedField(t *testing.T) {
	m, _ := newTestForm(t, methodology.Diverge, false, nil)
	m, _ = send(t, m, keyTab)
	for _, r := range "mobile" {
		m, _ = send(t, m, runeKey(r))
	}

	vals := m.Values()
	assert.Equal(t, "mobile", vals["projectContext"])
	assert.Empty(t, vals["problemStatement"])
}

func TestFormModel_SubmitShowsInlineErrors(t *testing.T) {
	m, events := newTestForm(t, methodology.TracerBullet, false, nil)
	m.Inputs[0].SetValue("CLI posts rows.")
	m, _ = send(t, m, keyTab)

	m, _ = send(t, m, keySubmit)

	assert.Equal(t, StateEditing, m.State)
	assert.Equal(t, map[string]string{
		"workingCode": "Please provide more details (at least 20 characters)",
	}, m.Errors)
	assert.Equal(t, 0, m.Focus, "focus jumps to the first invalid field")
	assert.Empty(t, m.Prompt)
	assert.Contains(t, m.View(), "at least 20 characters")
	assert.Equal(t, trackedEvents{telemetry.EventValidationFailed}, *events)
}

func TestFormModel_SubmitShowsPreview(t *testing.T) {
	m, events := newTestForm(t, methodology.AgentPlanning, true, nil)
	want, err := m.Def.Build(m.Def.ExampleInput())
	require.NoError(t, err)

	m, _ = send(t, m, keySubmit)

	assert.Equal(t, StatePreview, m.State)
	assert.Equal(t, want, m.Prompt)
	assert.Empty(t, m.Errors)
	assert.Contains(t, m.View(), "c: copy")
	assert.Equal(t, trackedEvents{telemetry.EventPromptGenerated}, *events)
}

func TestFormModel_CopyAcknowledgment(t *testing.T) {
	var copied []string
	pub := clipboard.PublisherFunc(func(s string) error {
		copied = append(copied, s)
		return nil
	})
	m, events := newTestForm(t, methodology.Diverge, true, pub)
	m, _ = send(t, m, keySubmit)
	require.Equal(t, StatePreview, m.State)

	var scheduled []time.Duration
	tick = func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		scheduled = append(scheduled, d)
		return func() tea.Msg { return fn(time.Now()) }
	}
	t.Cleanup(func() { tick = tea.Tick })

	m, cmd := send(t, m, runeKey('c'))
	require.NotNil(t, cmd)
	assert.Equal(t, []time.Duration{clipboard.AckDuration}, scheduled)
	assert.Equal(t, MsgCopyExpired{Token: 1}, cmd())
	assert.Equal(t, []string{m.Prompt}, copied)
	assert.Equal(t, clipboard.Copied, m.CopyStatus.State())
	assert.Contains(t, m.View(), "Copied!")
	first := m.CopyStatus

	// Re-copy inside the window restarts it: the first timer no longer reverts.
	m, cmd = send(t, m, runeKey('c'))
	assert.Same(t, first, m.CopyStatus)
	assert.Equal(t, []time.Duration{clipboard.AckDuration, clipboard.AckDuration}, scheduled)
	assert.Equal(t, MsgCopyExpired{Token: 2}, cmd())
	m, _ = send(t, m, MsgCopyExpired{Token: 1})
	assert.Equal(t, clipboard.Copied, m.CopyStatus.State())

	m, _ = send(t, m, MsgCopyExpired{Token: 2})
	assert.Equal(t, clipboard.Idle, m.CopyStatus.State())
	assert.NotContains(t, m.View(), "Copied!")

	assert.Equal(t, trackedEvents{
		telemetry.EventPromptGenerated,
		telemetry.EventPromptCopied,
		telemetry.EventPromptCopied,
	}, *events)
}

func TestFormModel_CopyFailureKeepsPrompt(t *testing.T) {
	pub := clipboard.PublisherFunc(func(string) error {
		return errors.New("denied")
	})
	m, _ := newTestForm(t, methodology.Diverge, true, pub)
	m, _ = send(t, m, keySubmit)
	prompt := m.Prompt

	m, cmd := send(t, m, runeKey('c'))

	assert.Nil(t, cmd, "no acknowledgment timer on failure")
	assert.True(t, m.CopyFailed)
	assert.Equal(t, clipboard.Idle, m.CopyStatus.State())
	assert.Equal(t, StatePreview, m.State)
	assert.Equal(t, prompt, m.Prompt)
	assert.Contains(t, m.View(), "Select the text above")
}

func TestFormModel_EditReturnsToForm(t *testing.T) {
	m, _ := newTestForm(t, methodology.Diverge, true, nil)
	before := m.Values()
	m, _ = send(t, m, keySubmit)
	require.Equal(t, StatePreview, m.State)

	m, _ = send(t, m, runeKey('e'))

	assert.Equal(t, StateEditing, m.State)
	assert.Equal(t, before, m.Values())
	assert.True(t, strings.Contains(m.View(), m.Def.FormTitle))
}

func TestFormModel_EscQuits(t *testing.T) {
	m, _ := newTestForm(t, methodology.Diverge, false, nil)

	m, cmd := send(t, m, keyEsc)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Quitting)
	assert.Empty(t, m.View())
}

func TestFormModel_WindowResize(t *testing.T) {
	m, _ := newTestForm(t, methodology.Diverge, true, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 8})

	assert.Equal(t, 100, m.Width)
	assert.Equal(t, MinPreviewHeight, m.Preview.Height)
}

func TestFormState_String(t *testing.T) {
	assert.Equal(t, "editing", StateEditing.String())
	assert.Equal(t, "preview", StatePreview.String())
}
