package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"go-photo-validator/internal/config"
	"go-photo-validator/internal/container"
	"go-photo-validator/internal/logger"
	"go-photo-validator/pkg/taxonomy"
)

// Version is the application version.
const Version = "1.0.0"

var (
	// app is the dependency container shared by subcommands
	app *container.Container

	logLevel   string
	jsonOutput bool
	lang       string
)

var rootCmd = &cobra.Command{
	Use:           "validator",
	Short:         "Pre-validate portrait photos for personal color analysis",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr so stdout stays machine-readable
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logLevel)

		cfg, err := config.LoadFromEnv()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		app, err = container.NewContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}

		cmd.SetContext(taxonomy.ContextWithLocale(cmd.Context(), taxonomy.MatchLocale(lang)))
		return nil
	},
}

func Execute() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the command line and always closes the container. Cobra skips
// post-run hooks when a command fails, so closing cannot live there.
func run(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if app != nil {
		if cerr := app.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close")
		}
		app = nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "language of user-facing guidance: en or ko")

	rootCmd.AddCommand(validateCmd, classifyCmd, catalogCmd)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
