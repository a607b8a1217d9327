// Package compile provides the compile command for snap.
package compile

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/snap/internal/config"
	"github.com/open-cli-collective/snap/internal/site"
	"github.com/open-cli-collective/snap/internal/view"
)

type compileOptions struct {
	dryRun  bool
	verbose bool
	debug   bool
	watch   bool
	output  string
	noColor bool
	out     io.Writer // injectable for testing
}

// NewCmdCompile creates the compile command.
func NewCmdCompile() *cobra.Command {
	opts := &compileOptions{}

	cmd := &cobra.Command{
		Use:     "compile [dir|project-file]",
		Aliases: []string{"build"},
		Short:   "Compile a project into a static site",
		Long: `Compile the project in the given directory (default: the current directory).

The output directory is emptied first. Every Markdown file is rendered into
the template, JavaScript sources are bundled into script.js and assets are
copied. The first error stops the run.`,
		Example: `  # Compile the project in the current directory
  snap compile

  # Show what would be written
  snap compile my-site --dry-run

  # Rebuild on every change
  snap compile --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()

			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			return runCompile(cmd.Context(), arg, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Report what would be done without writing files")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Report every file read and written")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Dump each page's parse tree after every stage")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Recompile whenever a project file changes")

	return cmd
}

func runCompile(ctx context.Context, arg string, opts *compileOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	projectPath, err := config.ResolvePath(arg)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	siteOpts := site.Options{
		DryRun:  opts.dryRun,
		Verbose: opts.verbose,
		Debug:   opts.debug,
		View:    renderer,
	}

	if !opts.watch {
		_, err := site.Compile(ctx, projectPath, siteOpts)
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	renderer.RenderText(fmt.Sprintf("Watching %s for changes (press Ctrl+C to stop)", projectPath))
	return site.Watch(ctx, projectPath, site.WatchOptions{
		Options: siteOpts,
		OnBuild: func(_ *site.Result, err error) {
			if err != nil {
				renderer.Error(err.Error())
			}
		},
	})
}
