package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go-photo-validator/pkg/models"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [category]",
	Short: "List error categories with their user-facing guidance",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := app.Service()

		if len(args) == 1 {
			info, err := svc.LookupErrorInfo(cmd.Context(), strings.ToUpper(args[0]))
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			printErrorInfo(cmd, info)
			return nil
		}

		infos := svc.Catalog(cmd.Context())
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), models.CatalogResponse{Errors: infos})
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tSEVERITY\tTITLE")
		for _, info := range infos {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Category, info.Severity, info.Title)
		}
		return tw.Flush()
	},
}
