package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/josephgoksu/promptfy/internal/clipboard"
	"github.com/josephgoksu/promptfy/internal/methodology"
	"github.com/josephgoksu/promptfy/internal/telemetry"
)

type FormState int

const (
	StateEditing FormState = iota
	StatePreview
)

func (s FormState) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StatePreview:
		return "preview"
	default:
		return "unknown"
	}
}

// Layout constants
const (
	DefaultFormWidth      = 80
	DefaultPreviewHeight  = 20
	MinPreviewHeight      = 6
	SingleLineFieldHeight = 1
	MultilineFieldHeight  = 4
	PreviewChromeHeight   = 6 // title + footer + borders
	MinWrapWidth          = 20
)

// MsgCopyExpired reverts the "Copied!" acknowledgment. Token ties it to the
// copy that scheduled it so a re-copy restarts the window.
type MsgCopyExpired struct {
	Token clipboard.Token
}

// FormOptions configure a FormModel. Nil dependencies fall back to the system
// clipboard and a no-op telemetry client.
type FormOptions struct {
	Prefill   bool
	Publisher clipboard.Publisher
	Telemetry telemetry.Client
	// GlamourStyle names a glamour standard style ("dark", "light", "notty").
	// Empty detects it from the terminal.
	GlamourStyle string
}

// FormModel is the terminal rendition of a methodology page: one textarea
// per field, inline errors, and a preview of the generated prompt.
type FormModel struct {
	State  FormState
	Def    *methodology.Definition
	Inputs []textarea.Model
	Focus  int
	Errors map[string]string

	Prompt     string
	Preview    viewport.Model
	CopyStatus *clipboard.Status
	CopyFailed bool
	Quitting   bool

	Width  int
	Height int

	publisher    clipboard.Publisher
	telemetry    telemetry.Client
	glamourStyle string
}

func NewFormModel(def *methodology.Definition, opts FormOptions) FormModel {
	if opts.Publisher == nil {
		opts.Publisher = clipboard.NewSystem()
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NewNoopClient()
	}

	in := def.EmptyInput()
	if opts.Prefill {
		in = def.ExampleInput()
	}

	inputs := make([]textarea.Model, len(def.Fields))
	for i, f := range def.Fields {
		ta := textarea.New()
		ta.Placeholder = f.Placeholder
		ta.CharLimit = 0 // Unlimited
		ta.ShowLineNumbers = false
		ta.SetWidth(DefaultFormWidth - 4)
		if f.Multiline {
			ta.SetHeight(MultilineFieldHeight)
		} else {
			ta.SetHeight(SingleLineFieldHeight)
		}
		ta.SetValue(in[f.Name])
		inputs[i] = ta
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	return FormModel{
		State:        StateEditing,
		Def:          def,
		Inputs:       inputs,
		Errors:       map[string]string{},
		Preview:      viewport.New(DefaultFormWidth, DefaultPreviewHeight),
		CopyStatus:   &clipboard.Status{},
		Width:        DefaultFormWidth,
		publisher:    opts.Publisher,
		telemetry:    opts.Telemetry,
		glamourStyle: opts.GlamourStyle,
	}
}

func (m FormModel) Init() tea.Cmd {
	return textarea.Blink
}

// Values returns the current field values keyed by field name.
func (m FormModel) Values() methodology.Input {
	in := make(methodology.Input, len(m.Inputs))
	for i, f := range m.Def.Fields {
		in[f.Name] = m.Inputs[i].Value()
	}
	return in
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		for i := range m.Inputs {
			m.Inputs[i].SetWidth(msg.Width - 4)
		}
		m.Preview.Width = msg.Width
		m.Preview.Height = msg.Height - PreviewChromeHeight
		if m.Preview.Height < MinPreviewHeight {
			m.Preview.Height = MinPreviewHeight
		}
		if m.State == StatePreview {
			m.Preview.SetContent(m.renderPrompt())
		}
		return m, nil

	case MsgCopyExpired:
		m.CopyStatus.Expire(msg.Token)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Quitting = true
			return m, tea.Quit
		}
		if m.State == StatePreview {
			return m.updatePreview(msg)
		}
		return m.updateEditing(msg)
	}

	if m.State == StatePreview {
		var cmd tea.Cmd
		m.Preview, cmd = m.Preview.Update(msg)
		return m, cmd
	}
	return m.updateFocused(msg)
}

func (m FormModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m.setFocus(m.Focus + 1), nil
	case "shift+tab":
		return m.setFocus(m.Focus - 1), nil
	case "ctrl+s":
		return m.submit()
	}
	return m.updateFocused(msg)
}

func (m FormModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.Inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.Inputs[m.Focus], cmd = m.Inputs[m.Focus].Update(msg)
	return m, cmd
}

func (m FormModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		return m.copyPrompt()
	case "e":
		m.State = StateEditing
		m.CopyFailed = false
		return m.setFocus(m.Focus), nil
	case "q":
		m.Quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.Preview, cmd = m.Preview.Update(msg)
	return m, cmd
}

// setFocus moves focus to field i, wrapping at both ends.
func (m FormModel) setFocus(i int) FormModel {
	n := len(m.Inputs)
	if n == 0 {
		return m
	}
	i = ((i % n) + n) % n
	for j := range m.Inputs {
		m.Inputs[j].Blur()
	}
	m.Focus = i
	m.Inputs[i].Focus()
	return m
}

// submit validates the form. Errors stay inline on their fields; a valid form
// switches to the preview.
func (m FormModel) submit() (tea.Model, tea.Cmd) {
	v, err := m.Def.Validate(m.Values())
	if err != nil {
		var fe *methodology.FieldErrors
		if errors.As(err, &fe) {
			m.Errors = fe.Map()
			m.telemetry.Track(telemetry.ValidationFailed(string(m.Def.ID), telemetry.SurfaceTUI, fe.Fields()))
			for i, f := range m.Def.Fields {
				if _, bad := m.Errors[f.Name]; bad {
					return m.setFocus(i), nil
				}
			}
		}
		return m, nil
	}

	prompt, err := m.Def.Assemble(v)
	if err != nil {
		m.Errors = map[string]string{m.Def.RequiredField().Name: err.Error()}
		return m, nil
	}

	m.Errors = map[string]string{}
	m.Prompt = prompt
	m.State = StatePreview
	m.CopyFailed = false
	m.Preview.SetContent(m.renderPrompt())
	m.Preview.GotoTop()
	m.telemetry.Track(telemetry.PromptGenerated(string(m.Def.ID), telemetry.SurfaceTUI, len(m.Def.Sections(v))))
	return m, nil
}

// copyPrompt publishes the prompt and schedules the acknowledgment revert.
// A failed write leaves the preview on screen and shows a hint instead.
func (m FormModel) copyPrompt() (tea.Model, tea.Cmd) {
	err := m.publisher.Publish(m.Prompt)
	m.telemetry.Track(telemetry.PromptCopied(string(m.Def.ID), telemetry.SurfaceTUI, err == nil))
	if err != nil {
		m.CopyFailed = true
		return m, nil
	}

	m.CopyFailed = false
	return m, copyExpiry(m.CopyStatus.Copy())
}

// tick is tea.Tick, swapped in tests.
var tick = tea.Tick

// copyExpiry reverts the acknowledgment for tok once AckDuration has passed.
func copyExpiry(tok clipboard.Token) tea.Cmd {
	return tick(clipboard.AckDuration, func(time.Time) tea.Msg {
		return MsgCopyExpired{Token: tok}
	})
}

func (m FormModel) renderPrompt() string {
	wrap := m.Width - 4
	if wrap < MinWrapWidth {
		wrap = MinWrapWidth
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wrap)}
	if m.glamourStyle != "" {
		opts = append(opts, glamour.WithStandardStyle(m.glamourStyle))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return m.Prompt
	}
	out, err := r.Render(m.Prompt)
	if err != nil {
		return m.Prompt
	}
	return out
}

func (m FormModel) View() string {
	if m.Quitting {
		return ""
	}
	if m.State == StatePreview {
		return m.viewPreview()
	}
	return m.viewEditing()
}

func (m FormModel) viewEditing() string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(m.Def.FormTitle))
	b.WriteString("\n")
	b.WriteString(StyleSubtle.Render(WrapText(m.Def.FormSubtitle, m.Width-2)))
	b.WriteString("\n\n")

	for i, f := range m.Def.Fields {
		label := f.Label
		if f.Required {
			label += StyleError.Render(" *")
		}
		if i == m.Focus {
			b.WriteString(StylePrimary.Render("▸ ") + StyleTitle.Render(label))
		} else {
			b.WriteString("  " + StyleText.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(m.Inputs[i].View())
		b.WriteString("\n")
		if msg, ok := m.Errors[f.Name]; ok {
			b.WriteString(StylePrefixError.Render("  ✗ " + msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(StyleSubtle.Render("tab/shift+tab: move • ctrl+s: generate • esc: quit"))
	return b.String()
}

func (m FormModel) viewPreview() string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(m.Def.Name + " prompt"))
	b.WriteString("\n")
	b.WriteString(m.Preview.View())
	b.WriteString("\n")

	switch {
	case m.CopyStatus.State() == clipboard.Copied:
		b.WriteString(StyleSuccess.Render("✓ Copied!"))
	case m.CopyFailed:
		b.WriteString(StyleWarning.Render("Clipboard unavailable. Select the text above to copy it."))
	default:
		b.WriteString(StyleSubtle.Render("c: copy • e: edit • ↑/↓: scroll • esc: quit"))
	}
	return b.String()
}

// RunForm runs the form until the user quits and returns the last generated
// prompt, if any.
func RunForm(def *methodology.Definition, opts FormOptions) (string, error) {
	p := tea.NewProgram(NewFormModel(def, opts), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running form: %w", err)
	}
	result := finalModel.(FormModel)
	return result.Prompt, nil
}
