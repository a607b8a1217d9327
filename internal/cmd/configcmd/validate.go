package configcmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/snap/internal/config"
	"github.com/open-cli-collective/snap/internal/site"
	"github.com/open-cli-collective/snap/internal/view"
)

type validateOptions struct {
	noColor bool
	out     io.Writer
}

// NewCmdValidate creates the config validate command.
func NewCmdValidate() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [dir|project-file]",
		Short: "Check that a project can be compiled",
		Long: `Load and validate a snap project file, then check that its template
exists and report how many files its patterns match.`,
		Example: `  # Validate the project in the current directory
  snap config validate`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()

			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			return runValidate(arg, opts)
		},
	}

	return cmd
}

func runValidate(arg string, opts *validateOptions) error {
	renderer := view.NewRenderer(view.FormatTable, opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	projectPath, err := config.ResolvePath(arg)
	if err != nil {
		return err
	}

	project, err := site.LoadProject(projectPath)
	if err != nil {
		renderer.Error("Invalid project file")
		return err
	}
	renderer.Success(fmt.Sprintf("Project file %s is valid", projectPath))

	if _, err := site.LoadTemplate(filepath.Join(project.Dir, project.Template)); err != nil {
		renderer.Error("Template check failed")
		return err
	}
	renderer.Success("Template found")

	targets, err := project.Targets()
	if err != nil {
		return err
	}
	if len(targets.Markdown) == 0 {
		renderer.Warn("No Markdown files matched")
	}

	renderer.RenderText(fmt.Sprintf("\n%d Markdown, %d JavaScript and %d asset files would be compiled.",
		len(targets.Markdown), len(targets.JavaScript), len(targets.Assets)))
	return nil
}
