package methodology

import (
	"fmt"
	"strings"
)

// sectionBreak separates consecutive prompt sections.
const sectionBreak = "\n\n"

// Assemble renders validated input into the methodology's prompt. The
// opening section comes from the required field, each optional section is
// emitted only when its value is non-empty, and the closing paragraph is
// always last. Values are embedded verbatim.
func (d *Definition) Assemble(v Validated) (string, error) {
	if v.values == nil {
		return "", ErrNotValidated
	}
	if v.methodology != d.ID {
		return "", fmt.Errorf("%w: %s assembled by %s", ErrMethodologyMismatch, v.methodology, d.ID)
	}

	var b strings.Builder
	for _, f := range d.Fields {
		value := v.values[f.Name]
		if value == "" {
			continue
		}
		writeSection(&b, f.Heading, value)
	}
	b.WriteString(d.Closing)

	return b.String(), nil
}

// Sections returns the headings that Assemble would emit for v, excluding
// the closing paragraph.
func (d *Definition) Sections(v Validated) []string {
	var out []string
	for _, f := range d.Fields {
		if v.values[f.Name] != "" {
			out = append(out, f.Heading)
		}
	}
	return out
}

func writeSection(b *strings.Builder, heading, body string) {
	b.WriteString("## ")
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString(sectionBreak)
}
