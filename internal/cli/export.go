package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [list]",
		Short: "Export lists as JSON or YAML",
		Long:  "Export all lists, or one list, with the objects they reference. Use -f yaml for YAML.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	name := ""
	if len(args) == 1 {
		name = args[0]
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	exp, err := s.ExportAll(cmd.Context(), name)
	if err != nil {
		exitErr("export", err)
	}

	printOut(cmd.OutOrStdout(), exp, nil)
}
