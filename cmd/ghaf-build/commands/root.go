// Package commands implements the CLI commands for the ghaf-build tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/tiiuae/ghaf-slim-demo/internal/app"
	"github.com/tiiuae/ghaf-slim-demo/internal/build"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
)

// Application is the surface of the app layer the CLI drives.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	ListTargets(ctx context.Context, flakeRef, filter string) ([]domain.Target, error)
}

// CLI represents the command line interface for ghaf-build.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ghaf-build",
		Short:         "Build Ghaf flake outputs in parallel",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("output-mode", "linear", "Output mode: linear, tape or quiet")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newTargetsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut sets the writer for command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}
