package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rcliao/paramlist/internal/model"
	"github.com/spf13/cobra"
)

type typeView struct {
	Key string `json:"key" yaml:"key"`
	model.TypeInfo `yaml:",inline"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the supported type keys",
		Run:   runTypes,
	}

	RootCmd.AddCommand(cmd)
}

func runTypes(cmd *cobra.Command, args []string) {
	var types []typeView
	for _, key := range model.TypeKeys() {
		info, _ := model.LookupType(key)
		types = append(types, typeView{Key: key, TypeInfo: info})
	}

	printOut(cmd.OutOrStdout(), types, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tTITLE\tMAJOR\tMINOR")
		for _, t := range types {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Key, t.Title, t.Major, t.Minor)
		}
		tw.Flush()
	})
}
