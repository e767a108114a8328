package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tiiuae/ghaf-slim-demo/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the selected flake outputs",
		Long: `Build resolves the selection to a set of flake output attribute paths
and runs one nix build per target, several at a time. Selection is either
an explicit target list (-t) or a regular expression (-f) matched against
the flake's flattened output paths.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, _ := cmd.Flags().GetString("target")
			filter, _ := cmd.Flags().GetString("filter")
			options, _ := cmd.Flags().GetString("option")
			flakeRef, _ := cmd.Flags().GetString("flake")
			jobs, _ := cmd.Flags().GetInt("jobs")
			maxFailures, _ := cmd.Flags().GetInt("max-failures")

			return c.app.Run(cmd.Context(), app.RunOptions{
				Targets:     targets,
				Filter:      filter,
				BuildArgs:   strings.Fields(options),
				FlakeRef:    flakeRef,
				Parallelism: jobs,
				MaxFailures: maxFailures,
			})
		},
	}

	cmd.Flags().StringP("target", "t", "", "Whitespace-separated list of targets to build")
	cmd.Flags().StringP("filter", "f", "", "Regular expression selecting targets from the output graph")
	cmd.Flags().StringP("option", "o", "", "Extra arguments passed through to every nix build")
	cmd.Flags().String("flake", "", "Flake reference to build from (defaults to the configured one)")
	cmd.Flags().IntP("jobs", "j", 0, "Maximum number of concurrent build jobs")
	cmd.Flags().Int("max-failures", 0, "Stop launching new jobs after this many failures")

	cmd.MarkFlagsMutuallyExclusive("target", "filter")
	cmd.MarkFlagsOneRequired("target", "filter")

	return cmd
}
