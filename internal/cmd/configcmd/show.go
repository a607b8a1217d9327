package configcmd

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/snap/internal/config"
	"github.com/open-cli-collective/snap/internal/view"
)

type showOptions struct {
	output  string
	noColor bool
	out     io.Writer
}

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show [dir|project-file]",
		Short: "Display the resolved project configuration",
		Long: `Display a project's configuration after defaults and environment
overrides are applied, with the source of every value.`,
		Example: `  # Show the project in the current directory
  snap config show

  # Output as JSON
  snap config show my-site -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()

			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			return runShow(arg, opts)
		},
	}

	return cmd
}

func runShow(arg string, opts *showOptions) error {
	projectPath, err := config.ResolvePath(arg)
	if err != nil {
		return err
	}

	fileProject, err := config.Load(projectPath)
	if err != nil {
		return err
	}
	project := *fileProject
	project.LoadFromEnv()

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	if view.Format(opts.output) == view.FormatJSON {
		return renderer.RenderJSON(project)
	}

	defaults := config.Defaults()
	source := func(value, fileValue, defaultValue string, envVar string) string {
		if envVar != "" {
			if v := os.Getenv(envVar); v != "" && v == value {
				return envVar
			}
		}
		if fileValue == defaultValue {
			return "default"
		}
		return "file"
	}
	list := func(values []string) string {
		if len(values) == 0 {
			return "-"
		}
		return view.Truncate(strings.Join(values, ", "), 60)
	}

	rows := [][]string{
		{"markdown", list(project.Markdown), source("", list(fileProject.Markdown), list(defaults.Markdown), "")},
		{"javascript", list(project.JavaScript), source("", list(fileProject.JavaScript), list(defaults.JavaScript), "")},
		{"assets", list(project.Assets), source("", list(fileProject.Assets), list(defaults.Assets), "")},
		{"ignore", list(project.Ignore), source("", list(fileProject.Ignore), list(defaults.Ignore), "")},
		{"aliases", aliasNames(project.Aliases), source("", aliasNames(fileProject.Aliases), aliasNames(defaults.Aliases), "")},
		{"template", project.Template, source("", fileProject.Template, defaults.Template, "")},
		{"output", project.Output, source(project.Output, fileProject.Output, defaults.Output, "SNAP_OUTPUT")},
		{"outputFormat", project.OutputFormat, source(project.OutputFormat, fileProject.OutputFormat, defaults.OutputFormat, "SNAP_OUTPUT_FORMAT")},
		{"linkTags.external.html", orDash(view.Truncate(project.LinkTags.External.HTML, 60)),
			source("", project.LinkTags.External.HTML, defaults.LinkTags.External.HTML, "")},
		{"linkTags.external.prepend", strconv.FormatBool(project.LinkTags.External.Prepend),
			source("", strconv.FormatBool(project.LinkTags.External.Prepend), strconv.FormatBool(defaults.LinkTags.External.Prepend), "")},
	}

	renderer.RenderTable([]string{"KEY", "VALUE", "SOURCE"}, rows)
	if view.Format(opts.output) != view.FormatPlain {
		renderer.RenderText("")
		renderer.RenderKeyValue("Project file", projectPath)
	}
	return nil
}

func aliasNames(aliases []config.Alias) string {
	if len(aliases) == 0 {
		return "-"
	}
	names := make([]string, len(aliases))
	for i, a := range aliases {
		names[i] = "{" + a.Alias + "}"
	}
	return view.Truncate(strings.Join(names, " "), 60)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
