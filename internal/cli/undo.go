package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rcliao/paramlist/internal/store"
	"github.com/spf13/cobra"
)

type historyView struct {
	ID         string    `json:"id" yaml:"id"`
	Action     string    `json:"action" yaml:"action"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	Parameters int       `json:"parameters" yaml:"parameters"`
}

func init() {
	undoCmd := &cobra.Command{
		Use:   "undo <list>",
		Short: "Revert the most recent edit of a list",
		Args:  cobra.ExactArgs(1),
		Run:   runUndo,
	}

	historyCmd := &cobra.Command{
		Use:   "history <list>",
		Short: "Show the undo history of a list",
		Args:  cobra.ExactArgs(1),
		Run:   runHistory,
	}
	historyCmd.Flags().Int("limit", 20, "Max entries")

	RootCmd.AddCommand(undoCmd, historyCmd)
}

func runUndo(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	e, err := s.Undo(cmd.Context(), args[0])
	if errors.Is(err, store.ErrNothingToUndo) {
		printResult(cmd.OutOrStdout(), result{Warning: err.Error()})
		return
	}
	if err != nil {
		exitErr("undo", err)
	}
	logger.Info("undone", "list", args[0], "action", e.Action)

	rec, err := s.GetList(cmd.Context(), args[0])
	if err != nil {
		exitErr("get list", err)
	}
	v := newListView(rec)
	printOut(cmd.OutOrStdout(), v, func(w io.Writer) {
		fmt.Fprintf(w, "undid %s\n", e.Action)
		writeListText(w, v)
	})
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.History(cmd.Context(), args[0], limit)
	if err != nil {
		exitErr("history", err)
	}

	views := []historyView{}
	for _, e := range entries {
		views = append(views, historyView{
			ID:         e.ID,
			Action:     e.Action,
			CreatedAt:  e.CreatedAt,
			Parameters: len(e.Before.Parameters),
		})
	}

	printOut(cmd.OutOrStdout(), views, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, h := range views {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", h.CreatedAt.Local().Format(time.DateTime), h.Action, h.ID)
		}
		tw.Flush()
	})
}
