package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newTargetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the buildable flake outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			flakeRef, _ := cmd.Flags().GetString("flake")

			targets, err := c.app.ListTargets(cmd.Context(), flakeRef, filter)
			if err != nil {
				return err
			}
			for _, t := range targets {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}

	cmd.Flags().StringP("filter", "f", "", "Regular expression narrowing the listing")
	cmd.Flags().String("flake", "", "Flake reference to enumerate (defaults to the configured one)")

	return cmd
}
