package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/expenserule/expenserule/internal/catalog"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the Schedule C expense categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tSCHEDULE C LINE")
			for _, c := range catalog.Default().Categories() {
				fmt.Fprintf(w, "%s\t%s\n", c.Name, c.ScheduleCLine)
			}
			return w.Flush()
		},
	}
}
