package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rcliao/paramlist/internal/model"
	"github.com/spf13/cobra"
)

type checkReport struct {
	List   string        `json:"list" yaml:"list"`
	Issues []model.Issue `json:"issues" yaml:"issues"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "check [list...]",
		Short: "Report parameters that lookups will mishandle",
		Long:  "Report empty ids, ids hidden by an earlier parameter, repeated (id, type) pairs and unknown type keys. Checks every list when none is named.",
		Run:   runCheck,
	}
	cmd.Flags().Bool("strict", false, "Exit with status 1 when issues are found")

	RootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	strict, _ := cmd.Flags().GetBool("strict")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	names := args
	if len(names) == 0 {
		lists, err := s.ListLists(cmd.Context())
		if err != nil {
			exitErr("list", err)
		}
		for _, ls := range lists {
			names = append(names, ls.Name)
		}
	}

	reports := []checkReport{}
	found := 0
	for _, name := range names {
		rec, err := s.GetList(cmd.Context(), name)
		if err != nil {
			exitErr("get list", err)
		}
		issues := model.Check(rec.List)
		if len(issues) == 0 {
			continue
		}
		found += len(issues)
		reports = append(reports, checkReport{List: name, Issues: issues})
	}

	printOut(cmd.OutOrStdout(), reports, func(w io.Writer) {
		for _, r := range reports {
			for _, is := range r.Issues {
				fmt.Fprintf(w, "%s[%d] %s: %s\n", r.List, is.Index, is.Param, is.Problem)
			}
		}
	})
	if strict && found > 0 {
		os.Exit(1)
	}
}
