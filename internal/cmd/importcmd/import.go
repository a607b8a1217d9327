// Package importcmd provides the import command for snap.
package importcmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/snap/internal/config"
	"github.com/open-cli-collective/snap/internal/site"
	"github.com/open-cli-collective/snap/internal/view"
	"github.com/open-cli-collective/snap/pkg/md"
)

// sourceDir is where imported pages are written, relative to the project.
const sourceDir = "source"

type importOptions struct {
	project  string
	selector string
	name     string
	force    bool
	noColor  bool
	out      io.Writer
}

// NewCmdImport creates the import command.
func NewCmdImport() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Convert an HTML page into a Markdown source file",
		Long: `Convert an existing HTML page into a Markdown page of a snap project.

The page is written to the project's source directory. Scripts and styles
are dropped, and the project's external link markup is removed so that a
page compiled by snap converts back to its source.`,
		Example: `  # Import a page into the project in the current directory
  snap import old-site/about.html

  # Import only the main element, under a new name
  snap import old-site/index.html --selector main --name home

  # Import into another project
  snap import page.html --project my-site`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runImport(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "Project directory or file (default: current directory)")
	cmd.Flags().StringVarP(&opts.selector, "selector", "s", "", "CSS selector of the element to convert (default: body)")
	cmd.Flags().StringVar(&opts.name, "name", "", "Name of the Markdown file (default: the HTML file's name)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing Markdown file")

	return cmd
}

func runImport(htmlPath string, opts *importOptions) error {
	projectPath, err := config.ResolvePath(opts.project)
	if err != nil {
		return err
	}
	project, err := site.LoadProject(projectPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to read HTML file: %w", err)
	}

	markdown, err := md.FromHTML(string(data), md.ImportOptions{
		Selector:   opts.selector,
		Decoration: project.LinkTags.External.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", htmlPath, err)
	}

	name := opts.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(htmlPath), filepath.Ext(htmlPath))
	}
	name = strings.TrimSuffix(name, ".md") + ".md"

	dest := filepath.Join(project.Dir, sourceDir, name)
	if _, err := os.Stat(dest); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", dest)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, []byte(markdown+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	renderer := view.NewRenderer(view.FormatTable, opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}
	renderer.Success(fmt.Sprintf("Imported %s to %s", htmlPath, dest))
	return nil
}
