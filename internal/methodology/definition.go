// Package methodology holds the three prompt-building methodologies and the
// validate/assemble pipeline shared by every surface (web, API, TUI, CLI, MCP).
package methodology

import (
	"errors"
	"strings"
)

// ID identifies a methodology.
type ID string

const (
	Diverge       ID = "diverge"
	TracerBullet  ID = "tracer-bullet"
	AgentPlanning ID = "agent-planning"
)

var (
	// ErrUnknown is returned when a methodology id is not in the catalog.
	ErrUnknown = errors.New("unknown methodology")

	// ErrNotValidated is returned when Assemble receives a zero Validated value.
	ErrNotValidated = errors.New("input has not been validated")

	// ErrMethodologyMismatch is returned when a Validated value from one
	// methodology is assembled by another.
	ErrMethodologyMismatch = errors.New("validated input belongs to a different methodology")
)

// Field describes one named text field of a methodology form.
type Field struct {
	Name        string `yaml:"name" json:"name"`
	Label       string `yaml:"label" json:"label"`
	Heading     string `yaml:"heading" json:"heading"`
	Required    bool   `yaml:"required" json:"required"`
	MinLength   int    `yaml:"minLength" json:"minLength,omitempty"`
	Multiline   bool   `yaml:"multiline" json:"multiline"`
	Placeholder string `yaml:"placeholder" json:"placeholder,omitempty"`
	Example     string `yaml:"example" json:"example,omitempty"`
}

// Definition is a single methodology: its page copy, its ordered field schema
// and its fixed closing paragraph. Field order is section order.
type Definition struct {
	ID   ID     `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Path string `yaml:"path" json:"path"`
	// Icon names the page's image asset; it is never rendered as text.
	Icon         string  `yaml:"icon" json:"icon,omitempty"`
	Summary      string  `yaml:"summary" json:"summary"`
	Title        string  `yaml:"title" json:"title"`
	Description  string  `yaml:"description" json:"description"`
	FormTitle    string  `yaml:"formTitle" json:"formTitle"`
	FormSubtitle string  `yaml:"formSubtitle" json:"formSubtitle"`
	Fields       []Field `yaml:"fields" json:"fields"`
	Closing      string  `yaml:"closing" json:"closing"`
}

// Input is the current set of user-entered values, keyed by field name.
type Input map[string]string

// Field returns the named field, if present.
func (d *Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredField returns the field that opens the prompt.
func (d *Definition) RequiredField() Field {
	for _, f := range d.Fields {
		if f.Required {
			return f
		}
	}
	return Field{}
}

// EmptyInput returns an input with every field present and blank.
func (d *Definition) EmptyInput() Input {
	in := make(Input, len(d.Fields))
	for _, f := range d.Fields {
		in[f.Name] = ""
	}
	return in
}

// ExampleInput returns an input pre-populated with each field's example text.
func (d *Definition) ExampleInput() Input {
	in := make(Input, len(d.Fields))
	for _, f := range d.Fields {
		in[f.Name] = f.Example
	}
	return in
}

// Build validates the input and assembles the prompt in one step.
func (d *Definition) Build(in Input) (string, error) {
	v, err := d.Validate(in)
	if err != nil {
		return "", err
	}
	return d.Assemble(v)
}

// FieldNames returns field names in section order.
func (d *Definition) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	return names
}

// ParseID normalizes user-supplied methodology names ("Tracer Bullet",
// "tracer_bullet", "agent-planning") into an ID.
func ParseID(s string) ID {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	return ID(s)
}
