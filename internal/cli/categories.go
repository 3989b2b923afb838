package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/metainfo/field/category"
)

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the accepted main categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, c := range category.All() {
				fmt.Fprintln(out, c)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Related:")
			for _, name := range category.RelatedNames() {
				var parents []string
				for _, c := range category.Related(name) {
					parents = append(parents, string(c))
				}
				fmt.Fprintf(out, "  %s -> %s\n", name, strings.Join(parents, ", "))
			}
			return nil
		},
	}
}
