// Package root provides the root command for the snap CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/snap/internal/cmd/clean"
	"github.com/open-cli-collective/snap/internal/cmd/compile"
	"github.com/open-cli-collective/snap/internal/cmd/completion"
	"github.com/open-cli-collective/snap/internal/cmd/configcmd"
	"github.com/open-cli-collective/snap/internal/cmd/create"
	"github.com/open-cli-collective/snap/internal/cmd/importcmd"
	"github.com/open-cli-collective/snap/internal/version"
	"github.com/open-cli-collective/snap/internal/view"
)

// NewCmdRoot creates the root command for snap.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snap",
		Short: "A static site compiler for Markdown projects",
		Long: `snap compiles a directory of Markdown pages, JavaScript and assets
into a static site.

Pages are rendered into an HTML template, aliases like {note}...{/note}
are expanded before parsing, and external links open in a new tab.

Get started by running: snap create my-site`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			return view.ValidateFormat(output)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	cmd.SetVersionTemplate("snap version " + version.String() + "\n")

	// Subcommands
	cmd.AddCommand(create.NewCmdCreate())
	cmd.AddCommand(compile.NewCmdCompile())
	cmd.AddCommand(importcmd.NewCmdImport())
	cmd.AddCommand(clean.NewCmdClean())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
