package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Name", "Required"},
		Rows: [][]string{
			{"diverge", "Diverge", "problemStatement"},
			{"agent-planning", "Agent planning", "goal"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, []int{14, 14, 16}, widths)
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Summary"},
		Rows:     [][]string{{"a", "A minimal, but fully functional, end-to-end slice of a system"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 20, widths[1])
}

func TestTable_ColumnWidths_CountsCells(t *testing.T) {
	table := &Table{
		Headers: []string{"Name"},
		Rows:    [][]string{{"Café"}},
	}

	assert.Equal(t, []int{4}, table.ColumnWidths())
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Name"},
		Rows: [][]string{
			{"diverge", "Diverge"},
			{"tracer-bullet", "Tracer bullet"},
		},
		MaxWidth: 10,
	}

	output := table.Render()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.Contains(t, output, "diverge")
	assert.Contains(t, output, "tracer-bu…")
	assert.NotContains(t, output, "tracer-bullet")
}

func TestTable_Empty(t *testing.T) {
	table := &Table{}
	assert.Equal(t, "", table.Render())
}
