package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxbow-build/oxbow/pkg/telemetry"
)

var (
	// Global flags
	verbose    bool
	jsonOutput bool
)

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "oxbow",
		Short: "Oxbow - standalone interpreter executable builder",
		Long: `Oxbow packages a dynamically-typed interpreter runtime into standalone
executables.

It compiles an embedding manifest into generated Go configuration source
for the host toolchain, and evaluates Starlark packaging scripts that
drive code signing and platform bundle builders.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newEvalCommand())
	rootCmd.AddCommand(newReceiptsCommand())

	return rootCmd
}

// newLogger builds the CLI logger honoring the global flags.
func newLogger() (*telemetry.Logger, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	format := "console"
	if jsonOutput {
		format = "json"
	}
	return telemetry.NewLogger(telemetry.LoggingConfig{
		Level:  level,
		Format: format,
		Output: "stderr",
	})
}
