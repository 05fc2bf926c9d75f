package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Draft-Lab/panela-tracker/internal/services/tracker"
)

func TestCommandsAreRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["recompute"])
}

func TestRecomputeRequiresSessionID(t *testing.T) {
	assert.Error(t, recomputeCmd.Args(recomputeCmd, nil))
	assert.NoError(t, recomputeCmd.Args(recomputeCmd, []string{"session-1"}))
}

func TestPrintDurations(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	printDurations(cmd, []*tracker.PlayerDurations{
		{PlayerID: "player-1", SoloMinutes: 10, GroupMinutes: 35, TotalMinutes: 45},
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "PLAYER")
	assert.Contains(t, string(lines[1]), "player-1")
	assert.Contains(t, string(lines[1]), "45")

	buf.Reset()
	printDurations(cmd, nil)
	assert.Equal(t, "no players with events in this session\n", buf.String())
}
