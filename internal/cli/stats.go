package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), getDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	printOut(cmd.OutOrStdout(), stats, func(w io.Writer) {
		fmt.Fprintf(w, "db:         %s (%d bytes)\n", stats.DBPath, stats.DBSizeBytes)
		fmt.Fprintf(w, "lists:      %d\n", stats.Lists)
		fmt.Fprintf(w, "parameters: %d\n", stats.Parameters)
		fmt.Fprintf(w, "objects:    %d\n", stats.Objects)
		fmt.Fprintf(w, "history:    %d\n", stats.HistoryEntries)
		for _, t := range stats.Types {
			fmt.Fprintf(w, "  %-14s %d\n", t.TypeKey, t.Count)
		}
	})
}
