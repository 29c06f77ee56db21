package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunList(t *testing.T) {
	tests := []struct {
		name     string
		opts     listOptions
		contains []string
	}{
		{"table", listOptions{}, []string{"Promptfy methodologies", "ID", "diverge", "tracer-bullet", "agent-planning", "workingCode"}},
		{"fields", listOptions{fields: true}, []string{"Tracer Bullet", "explorationFocus", "(required, min 20)", "(optional)", "╭"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, stdout, _ := newTestCommand("")
			require.NoError(t, runList(cmd, tt.opts))
			for _, s := range tt.contains {
				assert.Contains(t, stdout.String(), s)
			}
			assert.NotContains(t, stdout.String(), ".svg")
		})
	}
}

func TestRunList_JSON(t *testing.T) {
	cmd, stdout, _ := newTestCommand("")
	require.NoError(t, runList(cmd, listOptions{asJSON: true}))

	var got struct {
		Methodologies []struct {
			ID     string `json:"id"`
			Fields []struct {
				Name     string `json:"name"`
				Required bool   `json:"required"`
			} `json:"fields"`
		} `json:"methodologies"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	require.Len(t, got.Methodologies, 3)
	assert.Equal(t, "diverge", got.Methodologies[0].ID)
	assert.Equal(t, "problemStatement", got.Methodologies[0].Fields[0].Name)
	assert.True(t, got.Methodologies[0].Fields[0].Required)
}
