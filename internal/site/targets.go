package site

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Targets are the project files a compile run reads, as slash-separated
// paths relative to the project directory.
type Targets struct {
	Markdown   []string
	JavaScript []string
	Assets     []string
}

// FindTargets walks baseDir once and sorts its files into markdown,
// javascript and asset targets. Files matching an ignore pattern are skipped.
// Within each list files appear in pattern order, then lexical order, and
// each file appears at most once.
func FindTargets(baseDir string, markdown, javascript, assets, ignore []string) (*Targets, error) {
	var files []string
	err := filepath.WalkDir(baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(baseDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchAny(ignore, rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Targets{
		Markdown:   selectFiles(files, markdown),
		JavaScript: selectFiles(files, javascript),
		Assets:     selectFiles(files, assets),
	}, nil
}

func selectFiles(files, patterns []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		for _, f := range files {
			if !seen[f] && Match(pattern, f) {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if Match(pattern, name) {
			return true
		}
	}
	return false
}

// Match reports whether the slash-separated name matches a glob pattern in
// doublestar syntax, where "**" matches any number of directories, including
// none. A pattern without a slash is matched against the base name, so "*.md"
// finds Markdown files at any depth. A leading "./" is ignored. Malformed
// patterns match nothing.
func Match(pattern, name string) bool {
	pattern = strings.TrimPrefix(pattern, "./")
	if !doublestar.ValidatePattern(pattern) {
		return false
	}
	if !strings.Contains(pattern, "/") && pattern != "**" {
		name = path.Base(name)
	}
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
