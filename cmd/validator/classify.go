package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-photo-validator/pkg/taxonomy"
)

var classifyOpts struct {
	message string
	detail  string
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Map an error message from the analysis service to an error category",
	Example: `  validator classify --message "No face detected"
  validator classify --message "분석 실패" --detail "얼굴이 너무 작습니다"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(classifyOpts.message) == "" && strings.TrimSpace(classifyOpts.detail) == "" {
			return fmt.Errorf("--message or --detail is required")
		}

		resp := app.Service().ClassifyRemoteError(cmd.Context(), classifyOpts.message, classifyOpts.detail)
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), resp)
		}
		printErrorInfo(cmd, resp.ErrorInfo)
		return nil
	},
}

func printErrorInfo(cmd *cobra.Command, info taxonomy.ErrorInfo) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", info.Category, info.Severity)
	fmt.Fprintf(out, "  %s\n  %s\n", info.Title, info.Message)
	for _, r := range info.Remedies {
		fmt.Fprintf(out, "  - %s\n", r)
	}
}

func init() {
	classifyCmd.Flags().StringVar(&classifyOpts.message, "message", "", "error message returned by the analysis service")
	classifyCmd.Flags().StringVar(&classifyOpts.detail, "detail", "", "optional error detail")
}
