// Package create provides the create command for snap.
package create

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/snap/internal/config"
	"github.com/open-cli-collective/snap/internal/view"
)

// Scaffold file contents written by create.
const (
	templateHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>My site</title>
    <script src="script.js" defer></script>
</head>
<body>
    <main>
        <!--{content}-->
    </main>
</body>
</html>
`

	indexMarkdown = `# Welcome

This page was compiled by snap. Edit source/index.md and run {b}snap compile{/b}.

Read more about [Markdown](https://commonmark.org/help/).
`

	scriptJS = `document.addEventListener("DOMContentLoaded", function () {
    console.log("snap site loaded");
});
`
)

type createOptions struct {
	force   bool
	noColor bool
	out     io.Writer
	confirm func(title, description string) (bool, error) // injectable for testing
}

// NewCmdCreate creates the create command.
func NewCmdCreate() *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:     "create <dir>",
		Aliases: []string{"init", "new"},
		Short:   "Create a new snap project",
		Long: `Create a new snap project in the given directory.

The directory gets a snap.yml project file, an HTML template, a first
Markdown page, a JavaScript file and an empty assets directory. If the
directory already has files you are asked before anything is written.`,
		Example: `  # Create a project
  snap create my-site

  # Overwrite scaffold files without asking
  snap create my-site --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			opts.confirm = confirmPrompt
			return runCreate(args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Write into a non-empty directory without asking")

	return cmd
}

func confirmPrompt(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&ok).
		Run()
	return ok, err
}

func runCreate(dir string, opts *createOptions) error {
	renderer := view.NewRenderer(view.FormatTable, opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	empty, err := isEmptyDir(dir)
	if err != nil {
		return err
	}
	if !empty && !opts.force {
		if opts.confirm == nil {
			return fmt.Errorf("%s is not empty (use --force to write anyway)", dir)
		}
		ok, err := opts.confirm("Directory is not empty", fmt.Sprintf("Write a snap project into %s?", dir))
		if err != nil {
			return err
		}
		if !ok {
			renderer.RenderText("Create cancelled.")
			return nil
		}
	}

	project := config.Defaults()
	project.Aliases = []config.Alias{
		{Alias: "b", ReplaceWith: "<strong>", End: "</strong>"},
	}
	project.LinkTags.External.HTML = ` <span class="external">&#8599;</span>`

	projectPath := filepath.Join(dir, config.FileName)
	if err := project.Save(projectPath); err != nil {
		return err
	}
	renderer.Action("create", projectPath)

	files := []struct {
		name    string
		content string
	}{
		{project.Template, templateHTML},
		{filepath.Join("source", "index.md"), indexMarkdown},
		{filepath.Join("source", "script.js"), scriptJS},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		renderer.Action("create", path)
	}

	assets := filepath.Join(dir, "assets")
	if err := os.MkdirAll(assets, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", assets, err)
	}
	renderer.Action("create", assets)

	renderer.Success(fmt.Sprintf("Project created in %s", dir))
	renderer.RenderText("\nYou're all set! Try running:")
	renderer.RenderText("  snap compile " + dir)
	return nil
}

// isEmptyDir reports whether dir is missing or has no entries.
func isEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	return len(entries) == 0, nil
}
