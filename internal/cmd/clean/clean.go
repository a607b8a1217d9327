// Package clean provides the clean command for snap.
package clean

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/snap/internal/config"
	"github.com/open-cli-collective/snap/internal/site"
	"github.com/open-cli-collective/snap/internal/view"
)

type cleanOptions struct {
	force   bool
	noColor bool
	out     io.Writer
	stdin   io.Reader // injectable for testing
}

// NewCmdClean creates the clean command.
func NewCmdClean() *cobra.Command {
	opts := &cleanOptions{}

	cmd := &cobra.Command{
		Use:   "clean [dir|project-file]",
		Short: "Remove a project's output directory",
		Long:  `Delete the output directory of a snap project and everything in it.`,
		Example: `  # Remove the output of the project in the current directory
  snap clean

  # Remove without confirmation
  snap clean my-site --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			opts.stdin = os.Stdin // default to os.Stdin, can be overridden in tests

			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			return runClean(arg, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runClean(arg string, opts *cleanOptions) error {
	projectPath, err := config.ResolvePath(arg)
	if err != nil {
		return err
	}
	project, err := site.LoadProject(projectPath)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.FormatTable, opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}
	w := renderer.Writer()

	outDir := project.OutputDir()
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		renderer.Success("No output directory to remove")
		return nil
	}

	// Confirm removal unless --force is used
	if !opts.force {
		fmt.Fprintf(w, "About to remove %s and everything in it\n", outDir)
		fmt.Fprint(w, "Are you sure? [y/N]: ")

		var confirm string
		if opts.stdin != nil {
			scanner := bufio.NewScanner(opts.stdin)
			if scanner.Scan() {
				confirm = scanner.Text()
			}
		}

		if confirm != "y" && confirm != "Y" {
			fmt.Fprintln(w, "Clean cancelled.")
			return nil
		}
	}

	// Empty it first so the project-directory check applies.
	if err := site.CleanOutput(project.Dir, outDir, false); err != nil {
		return err
	}
	if err := os.Remove(outDir); err != nil {
		return fmt.Errorf("failed to remove output directory: %w", err)
	}

	renderer.Success(fmt.Sprintf("Removed %s", outDir))
	return nil
}
