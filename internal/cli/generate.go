package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [description]",
		Short: "Generate one game and print its code",
		Long: `Generate Phaser.js code for a single description and write it to stdout.
Runs the same validation as POST /generate-game.

Example:
  gamegen generate "a platformer where you jump over obstacles" > game.js`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			core, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			code, err := core.GenerateGame(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("generate game: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), code)
			return err
		},
	}
}
