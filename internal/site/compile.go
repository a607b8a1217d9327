// Package site runs snap compiles: it turns a project directory into a
// static site in the project's output directory.
package site

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/open-cli-collective/snap/internal/config"
	"github.com/open-cli-collective/snap/internal/view"
	"github.com/open-cli-collective/snap/pkg/md"
)

// ScriptFile is the name of the bundled JavaScript in the output directory.
const ScriptFile = "script.js"

// Options configures a compile run.
type Options struct {
	// DryRun reports what would be done without touching the file system.
	DryRun bool

	// Verbose reports every file read and written.
	Verbose bool

	// Debug dumps each page's parse tree after every stage.
	Debug bool

	// View receives progress output. Nil discards it.
	View *view.Renderer
}

// Result summarizes a compile run.
type Result struct {
	OutputDir string
	Pages     int
	Scripts   int
	Assets    int
	Bytes     int64
}

// Project is a loaded project file and the directory it lives in.
type Project struct {
	*config.Project
	Path string
	Dir  string
}

// LoadProject loads, env-overrides and validates the project file at path.
func LoadProject(projectPath string) (*Project, error) {
	p, err := config.Load(projectPath)
	if err != nil {
		return nil, err
	}
	p.LoadFromEnv()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", projectPath, err)
	}
	return &Project{Project: p, Path: projectPath, Dir: filepath.Dir(projectPath)}, nil
}

// OutputDir returns the absolute or project-relative output directory.
func (p *Project) OutputDir() string {
	if filepath.IsAbs(p.Output) {
		return filepath.Clean(p.Output)
	}
	return filepath.Join(p.Dir, p.Output)
}

// Targets finds the project's source files. The output directory is always
// ignored.
func (p *Project) Targets() (*Targets, error) {
	out := p.Output
	if rel, err := filepath.Rel(p.Dir, p.OutputDir()); err == nil {
		out = rel
	}
	ignore := append(append([]string{}, p.Ignore...), filepath.ToSlash(out)+"/**")
	targets, err := FindTargets(p.Dir, p.Markdown, p.JavaScript, p.Assets, ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to find source files: %w", err)
	}
	return targets, nil
}

// compiler holds the state of one compile run.
type compiler struct {
	project  *Project
	opts     Options
	view     *view.Renderer
	outDir   string
	template string
	result   Result
}

// Compile builds the project at projectPath. Processing stops at the first
// error; pages already written stay in the output directory.
func Compile(ctx context.Context, projectPath string, opts Options) (*Result, error) {
	project, err := LoadProject(projectPath)
	if err != nil {
		return nil, err
	}

	c := &compiler{
		project: project,
		opts:    opts,
		view:    opts.View,
		outDir:  project.OutputDir(),
	}
	if c.view == nil {
		c.view = view.NewRenderer(view.FormatTable, false)
		c.view.SetWriter(io.Discard)
	}
	c.result.OutputDir = c.outDir

	if err := c.run(ctx); err != nil {
		return nil, err
	}
	return &c.result, nil
}

func (c *compiler) logf(verb, name string) {
	if c.opts.Verbose || c.opts.DryRun {
		c.view.Action(verb, name)
	}
}

func (c *compiler) run(ctx context.Context) error {
	p := c.project

	template, err := LoadTemplate(filepath.Join(p.Dir, p.Template))
	if err != nil {
		return err
	}
	c.template = template

	if c.opts.DryRun {
		c.view.Notice("(This is a dry run. No output files will be written.)")
	}

	if err := CleanOutput(p.Dir, c.outDir, c.opts.DryRun); err != nil {
		return err
	}

	targets, err := p.Targets()
	if err != nil {
		return err
	}
	if len(targets.Markdown) == 0 {
		c.view.Warn("No Markdown files matched " + strings.Join(p.Markdown, ", "))
	}

	for _, rel := range targets.Markdown {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.page(rel); err != nil {
			return err
		}
	}

	if err := c.scripts(targets.JavaScript); err != nil {
		return err
	}

	for _, rel := range targets.Assets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.asset(rel); err != nil {
			return err
		}
	}

	c.view.Success(fmt.Sprintf("Site deployed to %s (%d pages, %d scripts, %d assets, %s)",
		c.outDir, c.result.Pages, c.result.Scripts, c.result.Assets, humanize.Bytes(uint64(c.result.Bytes))))
	return nil
}

// page renders one Markdown file into the template and writes it.
func (c *compiler) page(rel string) error {
	p := c.project
	c.logf("render", rel)

	source, err := readSource(filepath.Join(p.Dir, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}

	opts := md.Options{
		Aliases:      p.Aliases,
		ExternalHTML: p.LinkTags.External.HTML,
		Prepend:      p.LinkTags.External.Prepend,
	}
	if c.opts.Debug {
		opts.Debug = c.view.Writer()
	}

	content, err := md.RenderFile(rel, source, opts)
	if err != nil {
		return err
	}

	page, err := Format(ApplyTemplate(c.template, content), p.OutputFormat)
	if err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}

	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel)) + ".html"
	dest := filepath.Join(c.outDir, name)
	c.logf("output", dest)

	c.result.Pages++
	c.result.Bytes += int64(len(page))
	if c.opts.DryRun {
		return nil
	}
	if err := os.WriteFile(dest, []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

// scripts concatenates the JavaScript sources into ScriptFile, each preceded
// by a comment naming its source.
func (c *compiler) scripts(files []string) error {
	var bundle strings.Builder
	for _, rel := range files {
		c.logf("import", rel)
		source, err := readSource(filepath.Join(c.project.Dir, filepath.FromSlash(rel)))
		if err != nil {
			return err
		}
		fmt.Fprintf(&bundle, "// %s\n%s\n", rel, source)
	}
	c.result.Scripts = len(files)
	c.result.Bytes += int64(bundle.Len())

	dest := filepath.Join(c.outDir, ScriptFile)
	c.logf("output", dest)
	if c.opts.DryRun {
		return nil
	}
	if err := os.WriteFile(dest, []byte(bundle.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

// asset copies one file to the same relative path under the output directory.
func (c *compiler) asset(rel string) error {
	c.logf("copy", rel)

	src := filepath.Join(c.project.Dir, filepath.FromSlash(rel))
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to read asset: %w", err)
	}
	c.result.Assets++
	c.result.Bytes += info.Size()
	if c.opts.DryRun {
		return nil
	}

	dest := filepath.Join(c.outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}
	return copyFile(src, dest)
}

func readSource(p string) ([]byte, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("file not found: %q", p)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%q is not a file", p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

// CleanOutput empties the output directory, creating it when missing. It
// refuses to clean a directory that contains the project. In a dry run
// nothing is changed.
func CleanOutput(projectDir, outDir string, dryRun bool) error {
	absProject, err := filepath.Abs(projectDir)
	if err != nil {
		return err
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}
	if rel, err := filepath.Rel(absOut, absProject); err == nil && !strings.HasPrefix(rel, "..") {
		return fmt.Errorf("refusing to clean %s: it contains the project", outDir)
	}

	entries, err := os.ReadDir(outDir)
	if os.IsNotExist(err) {
		if dryRun {
			return nil
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}
	if dryRun {
		return nil
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(outDir, e.Name())); err != nil {
			return fmt.Errorf("failed to clean output directory: %w", err)
		}
	}
	return nil
}
