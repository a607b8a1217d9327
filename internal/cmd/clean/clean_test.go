package clean

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(t *testing.T, projectFile string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snap.yml"), []byte(projectFile), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "build", "assets"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build", "index.html"), []byte("x"), 0644))
	return dir
}

func TestRunClean_Confirmation(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantRemoved bool
	}{
		{"lowercase yes", "y\n", true},
		{"uppercase yes", "Y\n", true},
		{"no", "n\n", false},
		{"empty answer", "\n", false},
		{"other answer", "maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newProject(t, "output: build\n")
			var buf bytes.Buffer

			err := runClean(dir, &cleanOptions{noColor: true, out: &buf, stdin: strings.NewReader(tt.input)})
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "Are you sure?")

			if tt.wantRemoved {
				assert.NoDirExists(t, filepath.Join(dir, "build"))
				assert.Contains(t, buf.String(), "Removed")
			} else {
				assert.FileExists(t, filepath.Join(dir, "build", "index.html"))
				assert.Contains(t, buf.String(), "Clean cancelled.")
			}
			assert.FileExists(t, filepath.Join(dir, "snap.yml"))
		})
	}
}

func TestRunClean_Force(t *testing.T) {
	dir := newProject(t, "output: build\n")
	var buf bytes.Buffer

	err := runClean(dir, &cleanOptions{force: true, noColor: true, out: &buf})
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(dir, "build"))
	assert.NotContains(t, buf.String(), "Are you sure?")
}

func TestRunClean_NothingToRemove(t *testing.T) {
	dir := newProject(t, "output: public\n")
	var buf bytes.Buffer

	err := runClean(dir, &cleanOptions{noColor: true, out: &buf})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No output directory to remove")
	assert.DirExists(t, filepath.Join(dir, "build"))
}

func TestRunClean_RefusesProjectDirectory(t *testing.T) {
	dir := newProject(t, "output: .\n")

	err := runClean(dir, &cleanOptions{force: true, noColor: true, out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains the project")
	assert.FileExists(t, filepath.Join(dir, "snap.yml"))
}
