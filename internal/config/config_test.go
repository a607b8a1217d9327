package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestProject_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(p *Project)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "defaults are valid",
			modify:  func(p *Project) {},
			wantErr: false,
		},
		{
			name:    "no markdown patterns",
			modify:  func(p *Project) { p.Markdown = nil },
			wantErr: true,
			errMsg:  "no Markdown input patterns were given",
		},
		{
			name:    "no output directory",
			modify:  func(p *Project) { p.Output = "  " },
			wantErr: true,
			errMsg:  "no output directory was given",
		},
		{
			name:    "no template",
			modify:  func(p *Project) { p.Template = "" },
			wantErr: true,
			errMsg:  "no template was given",
		},
		{
			name:    "unknown output format",
			modify:  func(p *Project) { p.OutputFormat = "ugly" },
			wantErr: true,
			errMsg:  `invalid outputFormat "ugly"`,
		},
		{
			name:    "alias without name",
			modify:  func(p *Project) { p.Aliases = []Alias{{Alias: "ok", ReplaceWith: "x"}, {ReplaceWith: "y"}} },
			wantErr: true,
			errMsg:  "alias 2 has no name",
		},
		{
			name:    "alias with brace",
			modify:  func(p *Project) { p.Aliases = []Alias{{Alias: "a{b", ReplaceWith: "x"}} },
			wantErr: true,
			errMsg:  "must not contain braces",
		},
		{
			name: "minify with aliases",
			modify: func(p *Project) {
				p.OutputFormat = FormatMinify
				p.Aliases = []Alias{{Alias: "note", ReplaceWith: "<aside>", End: "</aside>"}}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Defaults()
			tt.modify(p)
			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "snap.yml",
			content: `output: public
aliases:
  - alias: note
    replaceWith: <aside>
    end: </aside>
linkTags:
  external:
    html: <sup>ext</sup>
`,
		},
		{
			name: "json",
			file: "snap.json",
			content: `{
  "output": "public",
  "aliases": [{"alias": "note", "replaceWith": "<aside>", "end": "</aside>"}],
  "linkTags": {"external": {"html": "<sup>ext</sup>"}}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			p, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, "public", p.Output)
			assert.Equal(t, []Alias{{Alias: "note", ReplaceWith: "<aside>", End: "</aside>"}}, p.Aliases)
			assert.Equal(t, "<sup>ext</sup>", p.LinkTags.External.HTML)
			assert.False(t, p.LinkTags.External.Prepend)

			// Keys not in the file keep their defaults.
			defaults := Defaults()
			assert.Equal(t, defaults.Markdown, p.Markdown)
			assert.Equal(t, defaults.Template, p.Template)
			assert.Equal(t, defaults.OutputFormat, p.OutputFormat)
		})
	}
}

func TestLoad_EmptyFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "")

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)
}

func TestLoad_UnknownKeys(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, FileName)
	writeFile(t, yamlPath, "outptu: build\n")
	_, err := Load(yamlPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse project file")

	jsonPath := filepath.Join(dir, LegacyFileName)
	writeFile(t, jsonPath, `{"outptu": "build"}`)
	_, err = Load(jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outptu")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/snap.yml")
	require.Error(t, err)
}

func TestProject_LoadFromEnv(t *testing.T) {
	t.Run("loads env vars", func(t *testing.T) {
		t.Setenv("SNAP_OUTPUT", "dist")
		t.Setenv("SNAP_OUTPUT_FORMAT", FormatMinify)

		p := Defaults()
		p.LoadFromEnv()

		assert.Equal(t, "dist", p.Output)
		assert.Equal(t, FormatMinify, p.OutputFormat)
	})

	t.Run("empty env vars do not override", func(t *testing.T) {
		t.Setenv("SNAP_OUTPUT", "")
		t.Setenv("SNAP_OUTPUT_FORMAT", "")

		p := Defaults()
		p.LoadFromEnv()

		assert.Equal(t, "build", p.Output)
		assert.Equal(t, FormatPrettify, p.OutputFormat)
	})
}

func TestResolvePath(t *testing.T) {
	t.Run("prefers yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, FileName), "")
		writeFile(t, filepath.Join(dir, LegacyFileName), "{}")

		path, err := ResolvePath(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, FileName), path)
	})

	t.Run("falls back to json", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, LegacyFileName), "{}")

		path, err := ResolvePath(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, LegacyFileName), path)
	})

	t.Run("file path returned as is", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "custom.yml")
		writeFile(t, file, "")

		path, err := ResolvePath(file)
		require.NoError(t, err)
		assert.Equal(t, file, path)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := ResolvePath(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no snap.yml or snap.json found")
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := ResolvePath("/nonexistent/project")
		require.Error(t, err)
	})
}

func TestProject_Save_and_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	original := Defaults()
	original.Output = "site"
	original.OutputFormat = FormatNone
	original.Aliases = []Alias{{Alias: "b", ReplaceWith: "**", End: "**"}}
	original.LinkTags.External = LinkTag{HTML: "↗", Prepend: true}

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}
