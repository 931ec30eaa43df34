// Package cli wires configuration, the generator and the HTTP server into
// the gamegen command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gamegen/internal/app"
	"gamegen/internal/config"
	"gamegen/pkg/ai"
)

type rootOptions struct {
	configPath string
	envFile    string
}

// NewRootCmd builds the gamegen command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "gamegen",
		Short: "Generate Phaser.js games from plain-language descriptions",
		Long: `gamegen turns a natural-language game description into Phaser.js game code
using a hosted text-generation model.

Configuration is read from config.yaml (optional), a .env file (optional)
and the environment. GEMINI_API_KEY is required for the default provider.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.LoadEnvFile(opts.envFile)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (default config.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading config")
	cmd.AddCommand(newServeCmd(opts), newGenerateCmd(opts))
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func loadConfig(opts *rootOptions) (config.FileConfig, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newApp(ctx context.Context, cfg config.FileConfig) (*app.App, error) {
	generator, err := ai.NewTextGenerator(ctx, cfg.ProviderConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to init generator: %w", err)
	}
	core, err := app.New(app.Config{
		Generator:    generator,
		SystemPrompt: cfg.SystemPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init app: %w", err)
	}
	return core, nil
}
