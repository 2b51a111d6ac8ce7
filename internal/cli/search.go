package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rcliao/paramlist/internal/model"
	"github.com/rcliao/paramlist/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search parameters by id or comment",
		Long:  "Search parameter ids and comments across lists for matching text.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("list", "l", "", "Filter by list")
	cmd.Flags().StringP("type", "t", "", "Filter by type key")
	cmd.Flags().Int("limit", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	list, _ := cmd.Flags().GetString("list")
	typeKey, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.Search(cmd.Context(), store.SearchParams{
		List:    list,
		Query:   query,
		TypeKey: typeKey,
		Limit:   limit,
	})
	if err != nil {
		exitErr("search", err)
	}
	if results == nil {
		results = []store.SearchResult{}
	}

	printOut(cmd.OutOrStdout(), results, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, r := range results {
			d := r.Parameter
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", r.List, r.Index, d.ID, d.TypeKey, model.FormatValue(d.Value()))
		}
		tw.Flush()
	})
}
