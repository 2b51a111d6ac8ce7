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
	objectCmd := &cobra.Command{
		Use:   "object",
		Short: "Manage host objects that parameters can reference",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a host object",
		Run:   runObjectAdd,
	}
	addCmd.Flags().String("kind", "object", "Object kind: object, scene-object or texture")
	addCmd.Flags().String("name", "", "Display name")

	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List host objects",
		Run:   runObjectLs,
	}
	lsCmd.Flags().String("kind", "", "Filter by kind")

	objectCmd.AddCommand(addCmd, lsCmd)
	RootCmd.AddCommand(objectCmd)
}

func runObjectAdd(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	name, _ := cmd.Flags().GetString("name")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	obj, err := s.RegisterObject(cmd.Context(), store.ObjectParams{Kind: model.Kind(kind), Name: name})
	if err != nil {
		exitErr("register object", err)
	}
	printOut(cmd.OutOrStdout(), obj, func(w io.Writer) { fmt.Fprintln(w, obj.ID) })
}

func runObjectLs(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	objects, err := s.ListObjects(cmd.Context(), model.Kind(kind))
	if err != nil {
		exitErr("list objects", err)
	}
	if objects == nil {
		objects = []model.Object{}
	}

	printOut(cmd.OutOrStdout(), objects, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, o := range objects {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", o.ID, o.Kind, o.Name)
		}
		tw.Flush()
	})
}
