package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Draft-Lab/panela-tracker/internal/services/tracker"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute <session-id>",
	Short: "Rebuild a session's per-player durations from its event log",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecompute,
}

func runRecompute(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.tracker.RecomputeDurations(cmd.Context(), &tracker.RecomputeDurationsInput{
		SessionID: args[0],
	})
	if err != nil {
		return err
	}

	printDurations(cmd, out.Durations)
	return nil
}

func printDurations(cmd *cobra.Command, durations []*tracker.PlayerDurations) {
	w := cmd.OutOrStdout()
	if len(durations) == 0 {
		fmt.Fprintln(w, "no players with events in this session")
		return
	}

	fmt.Fprintf(w, "%-36s  %6s  %6s  %6s\n", "PLAYER", "SOLO", "GROUP", "TOTAL")
	for _, d := range durations {
		fmt.Fprintf(w, "%-36s  %6d  %6d  %6d\n", d.PlayerID, d.SoloMinutes, d.GroupMinutes, d.TotalMinutes)
	}
}
