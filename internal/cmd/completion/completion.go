// Package completion provides shell completion generation commands.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

// shell describes one completion sub-command.
type shell struct {
	name    string
	load    string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name:    "bash",
		load:    "source <(snap completion bash)",
		install: "snap completion bash > /etc/bash_completion.d/snap",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	},
	{
		name:    "zsh",
		load:    "source <(snap completion zsh)",
		install: `snap completion zsh > "${fpath[1]}/_snap"`,
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	},
	{
		name:    "fish",
		load:    "snap completion fish | source",
		install: "snap completion fish > ~/.config/fish/completions/snap.fish",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	},
	{
		name:    "powershell",
		load:    "snap completion powershell | Out-String | Invoke-Expression",
		install: "snap completion powershell >> $PROFILE",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for snap.

These scripts enable tab-completion for commands, flags, and arguments.
See each sub-command's help for installation instructions.`,
	}

	for _, s := range shells {
		cmd.AddCommand(newCmdShell(s))
	}

	return cmd
}

func newCmdShell(s shell) *cobra.Command {
	return &cobra.Command{
		Use:   s.name,
		Short: "Generate " + s.name + " completion script",
		Long: `Generate ` + s.name + ` completion script for snap.

To load completions in your current shell session:

  ` + s.load + `

To load completions for every new session:

  ` + s.install,
		Example:               "  " + s.load,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
