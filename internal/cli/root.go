// Package cli provides the Cobra command structure for hidders.
package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root hidders command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hidders",
		Short: "Text buffer core for the Hidders editor",
		Long: `hidders holds the editor's document in a rope and serves line-addressed
edits and viewport reads to a host process over stdio.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
