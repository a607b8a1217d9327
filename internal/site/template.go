package site

import (
	"fmt"
	"os"
	"strings"
)

// ContentMarker is replaced by the rendered page in a template.
const ContentMarker = "<!--{content}-->"

// LoadTemplate reads the HTML template at path.
func LoadTemplate(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("template file not found: %q", path)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("template %q is not a file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(data), nil
}

// ApplyTemplate inserts content at every ContentMarker in template.
func ApplyTemplate(template, content string) string {
	return strings.ReplaceAll(template, ContentMarker, content)
}
