// Package md compiles snap Markdown sources to HTML fragments.
//
// A source file goes through alias expansion, parsing, text consolidation
// and the link/image rewrite before it is rendered.
package md

import (
	"fmt"
	"io"

	"github.com/open-cli-collective/snap/pkg/tree"
)

// DefaultSoftBreak is written for soft line breaks when Options.SoftBreak is
// empty.
const DefaultSoftBreak = "<br/>"

// Options configures RenderFile.
type Options struct {
	Aliases      []Alias
	ExternalHTML string
	Prepend      bool

	// SoftBreak replaces soft line breaks in the output.
	SoftBreak string

	// Debug, when set, receives a dump of the tree after each stage.
	Debug io.Writer
}

// RenderFile compiles one Markdown source to an HTML fragment. path is used
// only in error messages. Any error is a *FileError; no partial output is
// returned with it.
func RenderFile(path string, source []byte, opts Options) (string, error) {
	if len(source) == 0 {
		return "", nil
	}

	expanded, err := ExpandAliases(string(source), opts.Aliases)
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}

	softBreak := opts.SoftBreak
	if softBreak == "" {
		softBreak = DefaultSoftBreak
	}
	render := func(t *tree.Tree, id tree.NodeID) string {
		return tree.Render(t, id, tree.RenderOptions{SoftBreak: softBreak})
	}

	t := tree.Parse([]byte(expanded))
	if err := debugDump(opts.Debug, "RAW AST", t); err != nil {
		return "", &FileError{Path: path, Err: err}
	}

	Consolidate(t)
	if err := debugDump(opts.Debug, "CONSOLIDATED AST", t); err != nil {
		return "", &FileError{Path: path, Err: err}
	}

	err = Rewrite(t, RewriteConfig{
		Path:         path,
		ExternalHTML: opts.ExternalHTML,
		Prepend:      opts.Prepend,
		Render:       render,
	})
	if err != nil {
		return "", err
	}
	if err := debugDump(opts.Debug, "FINAL AST", t); err != nil {
		return "", &FileError{Path: path, Err: err}
	}

	return render(t, t.Root()), nil
}

func debugDump(w io.Writer, title string, t *tree.Tree) error {
	if w == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n\n", title); err != nil {
		return err
	}
	return tree.Dump(w, t, t.Root())
}
