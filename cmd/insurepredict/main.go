// Insurepredict serves the insurance premium prediction form.
//
// The serve command hosts the landing page and the prediction form over HTTP.
// The predict command walks through the same form in the terminal and prints
// the predicted premium category with its derived metrics.
//
// Usage:
//
//	insurepredict serve [flags]
//	insurepredict predict [flags]
//
// Settings are read from insurepredict.yaml (./ or /etc/insurepredict/),
// INSUREPREDICT_* environment variables and flags, in increasing priority.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-insurepredict"
	"github.com/goliatone/go-insurepredict/internal/config"
	"github.com/goliatone/go-insurepredict/internal/logging"
	"github.com/goliatone/go-insurepredict/internal/version"
	"github.com/goliatone/go-insurepredict/pkg/contract"
	"github.com/goliatone/go-insurepredict/pkg/prompt"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "insurepredict",
	Short: "Insurance premium category prediction form",
	Long: `A web form and terminal client that collect a customer profile, send it to a
prediction service and show the predicted premium category together with BMI,
age group, lifestyle risk and city tier.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configFile string

// flagKeys maps config keys to the flag names that override them.
var flagKeys = map[string]string{
	"log.level":                "log-level",
	"log.format":               "log-format",
	"server.addr":              "addr",
	"server.session_ttl":       "session-ttl",
	"ui.theme_variant":         "theme",
	"catalog.file":             "catalog",
	"predict.default_endpoint": "endpoint",
	"predict.timeout":          "timeout",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (default: ./insurepredict.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a city catalog YAML file")
	rootCmd.PersistentFlags().String("endpoint", "", "Default prediction endpoint URL")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Prediction request timeout (0 disables)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(contractCmd)
	rootCmd.AddCommand(versionCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the landing page and prediction form",
	Example: `  # Listen on the default address (:8080)
  insurepredict serve

  # Custom address, dark theme and a pre-filled endpoint
  insurepredict serve --addr 127.0.0.1:9000 --theme dark --endpoint http://localhost:8000/predict`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().Duration("session-ttl", 0, "Idle session lifetime (default 30m)")
	serveCmd.Flags().String("theme", "", "Theme variant (empty or dark)")
}

var predictFormat string

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Fill in the form in the terminal",
	Example: `  insurepredict predict --endpoint http://localhost:8000/predict
  insurepredict predict --format json`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictFormat, "format", string(prompt.OutputFormatPrettyText), "Output format (pretty, json)")
}

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Print the prediction service OpenAPI contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(contract.Raw())
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "insurepredict %s\n", version.Version)
		if version.Commit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", version.Commit)
		}
	},
}

func setup(ctx context.Context, cmd *cobra.Command) (*insurepredict.App, error) {
	cfg, err := config.Load(config.Options{
		File:     configFile,
		Flags:    cmd.Flags(),
		FlagKeys: flagKeys,
	})
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	return insurepredict.New(ctx, cfg, logger)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()

	app.Logger.Info("starting insurepredict",
		zap.String("version", version.Version),
		zap.String("addr", app.Config.Server.Addr),
		zap.Int("cities", len(app.Catalog.Cities)),
		zap.String("breaker", app.BreakerState()),
	)
	return app.Serve(ctx)
}

func runPredict(cmd *cobra.Command, args []string) error {
	format := prompt.OutputFormat(predictFormat)
	switch format {
	case prompt.OutputFormatPrettyText, prompt.OutputFormatJSON:
	default:
		return fmt.Errorf("unsupported --format %q", predictFormat)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	app, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()

	runner := app.Runner(
		prompt.WithOutput(cmd.OutOrStdout()),
		prompt.WithOutputFormat(format),
	)
	if err := runner.Run(ctx, app.NewView()); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return nil
		}
		return err
	}
	return nil
}
