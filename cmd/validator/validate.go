package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"go-photo-validator/internal/service"
	"go-photo-validator/pkg/models"
)

var validateOpts struct {
	parallel   int
	noProgress bool
}

// fileResult is the outcome for one input file
type fileResult struct {
	Path     string                     `json:"path"`
	Response *models.ValidationResponse `json:"response,omitempty"`
	Error    string                     `json:"error,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate <photo>...",
	Short: "Validate local photos and report why unusable ones were rejected",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var bar *progressbar.ProgressBar
		if !validateOpts.noProgress {
			bar = progressbar.NewOptions(len(args),
				progressbar.OptionSetDescription("Validating"),
				progressbar.OptionSetWriter(os.Stderr), // Write bar to Stderr
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		results := validateFiles(cmd.Context(), app.Service(), args, validateOpts.parallel, func() {
			if bar != nil {
				bar.Add(1)
			}
		})
		if bar != nil {
			bar.Finish()
		}

		if jsonOutput {
			if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
				return err
			}
		} else {
			printResults(cmd.OutOrStdout(), results)
		}

		if rejected := countRejected(results); rejected > 0 {
			return fmt.Errorf("%d of %d photos did not pass validation", rejected, len(results))
		}
		return nil
	},
}

// validateFiles validates every path with at most parallel photos in flight.
// Results keep the order of paths.
func validateFiles(ctx context.Context, svc service.ValidationService, paths []string, parallel int, done func()) []fileResult {
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	results := make([]fileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, path := range paths {
		g.Go(func() error {
			defer done()
			results[i] = validateFile(gctx, svc, path)
			return nil
		})
	}
	g.Wait()
	return results
}

func validateFile(ctx context.Context, svc service.ValidationService, path string) fileResult {
	res := fileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	resp, err := svc.ValidatePhoto(ctx, data)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Response = resp
	return res
}

func countRejected(results []fileResult) int {
	n := 0
	for _, r := range results {
		if r.Response == nil || !r.Response.Result.IsValid {
			n++
		}
	}
	return n
}

func printResults(w io.Writer, results []fileResult) {
	for _, r := range results {
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "ERROR  %s: %s\n", r.Path, r.Error)
		case r.Response.Result.IsValid:
			status := "PASS"
			if r.Response.FailedOpen {
				status = "SKIP"
			}
			fmt.Fprintf(w, "%s   %s\n", status, r.Path)
			for _, warning := range r.Response.Result.Details.Warnings {
				fmt.Fprintf(w, "       warning: %s\n", warning)
			}
		default:
			fmt.Fprintf(w, "FAIL   %s: %s", r.Path, *r.Response.Result.ErrorType)
			if r.Response.ErrorInfo != nil {
				fmt.Fprintf(w, " (%s)", r.Response.ErrorInfo.Title)
			}
			fmt.Fprintln(w)
		}
	}
}

func init() {
	validateCmd.Flags().IntVarP(&validateOpts.parallel, "parallel", "p", 0, "photos validated at once (default: number of CPUs)")
	validateCmd.Flags().BoolVar(&validateOpts.noProgress, "no-progress", false, "disable the progress bar")
}
