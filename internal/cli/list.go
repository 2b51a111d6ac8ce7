package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rcliao/paramlist/internal/model"
	"github.com/rcliao/paramlist/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Manage parameter lists",
	}

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty list",
		Args:  cobra.ExactArgs(1),
		Run:   runListCreate,
	}
	createCmd.Flags().StringP("comment", "c", "", "List comment")

	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List all lists",
		Run:   runListLs,
	}

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a list and its parameters",
		Args:  cobra.ExactArgs(1),
		Run:   runListShow,
	}

	dupCmd := &cobra.Command{
		Use:   "dup <from> <to>",
		Short: "Duplicate a list under a new name",
		Long:  "Copy a list. The copy gets a new id and its own parameters; editing one never affects the other.",
		Args:  cobra.ExactArgs(2),
		Run:   runListDup,
	}

	rmCmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a list and its history",
		Args:  cobra.ExactArgs(1),
		Run:   runListRm,
	}

	commentCmd := &cobra.Command{
		Use:   "comment <name> <text>",
		Short: "Set the list comment",
		Args:  cobra.ExactArgs(2),
		Run:   runListComment,
	}

	listCmd.AddCommand(createCmd, lsCmd, showCmd, dupCmd, rmCmd, commentCmd)
	RootCmd.AddCommand(listCmd)
}

func runListCreate(cmd *cobra.Command, args []string) {
	comment, _ := cmd.Flags().GetString("comment")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.CreateList(cmd.Context(), store.CreateListParams{Name: args[0], Comment: comment})
	if err != nil {
		exitErr("create list", err)
	}

	v := newListView(rec)
	printOut(cmd.OutOrStdout(), v, func(w io.Writer) { writeListText(w, v) })
}

func runListLs(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	lists, err := s.ListLists(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}
	if lists == nil {
		lists = []store.ListSummary{}
	}

	printOut(cmd.OutOrStdout(), lists, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, ls := range lists {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", ls.Name, ls.Parameters, ls.Comment)
		}
		tw.Flush()
	})
}

func runListShow(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.GetList(cmd.Context(), args[0])
	if err != nil {
		exitErr("get list", err)
	}

	v := newListView(rec)
	printOut(cmd.OutOrStdout(), v, func(w io.Writer) { writeListText(w, v) })
}

func runListDup(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.DuplicateList(cmd.Context(), store.DuplicateParams{From: args[0], To: args[1]})
	if err != nil {
		exitErr("duplicate list", err)
	}

	v := newListView(rec)
	printOut(cmd.OutOrStdout(), v, func(w io.Writer) { writeListText(w, v) })
}

func runListRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.DeleteList(cmd.Context(), args[0]); err != nil {
		exitErr("delete list", err)
	}
	printOut(cmd.OutOrStdout(), result{OK: true}, func(w io.Writer) {
		fmt.Fprintf(w, "deleted %s\n", args[0])
	})
}

func runListComment(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.Edit(cmd.Context(), args[0], "set list comment", func(l *model.List) error {
		l.SetComment(args[1])
		return nil
	})
	if err != nil {
		exitErr("set comment", err)
	}

	v := newListView(rec)
	printOut(cmd.OutOrStdout(), v, func(w io.Writer) { writeListText(w, v) })
}
