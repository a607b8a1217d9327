// Package config provides the snap project file model.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/snap/pkg/md"
)

// Project file names looked up in a project directory, in order.
const (
	FileName       = "snap.yml"
	LegacyFileName = "snap.json"
)

// Output formats applied to generated HTML pages.
const (
	FormatNone     = "none"
	FormatMinify   = "minify"
	FormatPrettify = "prettify"
)

// ValidOutputFormats lists the accepted outputFormat values.
var ValidOutputFormats = []string{FormatNone, FormatMinify, FormatPrettify}

// Alias is one entry of the project's alias table.
type Alias = md.Alias

// Project holds the snap project configuration.
type Project struct {
	Markdown     []string `yaml:"markdown" json:"markdown"`
	JavaScript   []string `yaml:"javascript" json:"javascript"`
	Assets       []string `yaml:"assets" json:"assets"`
	Ignore       []string `yaml:"ignore" json:"ignore"`
	Aliases      []Alias  `yaml:"aliases" json:"aliases"`
	Template     string   `yaml:"template" json:"template"`
	Output       string   `yaml:"output" json:"output"`
	OutputFormat string   `yaml:"outputFormat" json:"outputFormat"`
	LinkTags     LinkTags `yaml:"linkTags" json:"linkTags"`
}

// LinkTags holds markup added to rendered links.
type LinkTags struct {
	External LinkTag `yaml:"external" json:"external"`
}

// LinkTag is markup placed inside a link, after its text unless Prepend is set.
type LinkTag struct {
	HTML    string `yaml:"html" json:"html"`
	Prepend bool   `yaml:"prepend" json:"prepend"`
}

// Defaults returns the configuration used for any key a project file omits.
func Defaults() *Project {
	return &Project{
		Markdown:     []string{"source/**/*.md"},
		JavaScript:   []string{"source/**/*.js"},
		Assets:       []string{"assets/**"},
		Ignore:       []string{},
		Aliases:      []Alias{},
		Template:     "template.html",
		Output:       "build",
		OutputFormat: FormatPrettify,
	}
}

// Validate checks that the project can be compiled.
func (p *Project) Validate() error {
	if len(p.Markdown) == 0 {
		return errors.New("no Markdown input patterns were given (check the 'markdown' property)")
	}
	if strings.TrimSpace(p.Output) == "" {
		return errors.New("no output directory was given (check the 'output' property)")
	}
	if p.Template == "" {
		return errors.New("no template was given (check the 'template' property)")
	}
	if !slices.Contains(ValidOutputFormats, p.OutputFormat) {
		return fmt.Errorf("invalid outputFormat %q (must be one of: %s)", p.OutputFormat, strings.Join(ValidOutputFormats, ", "))
	}
	for i, a := range p.Aliases {
		if a.Alias == "" {
			return fmt.Errorf("alias %d has no name", i+1)
		}
		if strings.ContainsAny(a.Alias, "{}") {
			return fmt.Errorf("alias %q must not contain braces", a.Alias)
		}
	}
	return nil
}

// LoadFromEnv applies environment overrides.
// Environment variables override existing values only if set and non-empty.
func (p *Project) LoadFromEnv() {
	if out := os.Getenv("SNAP_OUTPUT"); out != "" {
		p.Output = out
	}
	if format := os.Getenv("SNAP_OUTPUT_FORMAT"); format != "" {
		p.OutputFormat = format
	}
}

// Load reads a project file and overlays it onto Defaults. Files ending in
// .json are decoded as JSON, anything else as YAML. Unknown keys are errors.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	p := Defaults()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(p); err != nil {
			return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
		}
		return p, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}
	return p, nil
}

// ResolvePath turns a command argument into a project file path. A directory
// (or "" for the working directory) is searched for FileName, then
// LegacyFileName. A file path is returned as is.
func ResolvePath(arg string) (string, error) {
	if arg == "" {
		arg = "."
	}

	info, err := os.Stat(arg)
	if err != nil {
		return "", fmt.Errorf("failed to find project: %w", err)
	}
	if !info.IsDir() {
		return arg, nil
	}

	for _, name := range []string{FileName, LegacyFileName} {
		candidate := filepath.Join(arg, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no %s or %s found in %s", FileName, LegacyFileName, arg)
}

// Save writes the project as YAML to path.
func (p *Project) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}

	return nil
}
