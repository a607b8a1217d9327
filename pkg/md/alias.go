// alias.go implements {name}...{/name} alias macro expansion over raw source.
package md

import (
	"fmt"
	"strings"
)

// Alias maps a macro name to the text that replaces its opening and closing
// tags. {Alias} becomes ReplaceWith and {/Alias} becomes End.
type Alias struct {
	Alias       string `yaml:"alias" json:"alias"`
	ReplaceWith string `yaml:"replaceWith" json:"replaceWith"`
	End         string `yaml:"end,omitempty" json:"end,omitempty"`
}

// lookupAlias returns the replacement for a macro name. The first alias
// with a matching name wins.
func lookupAlias(aliases []Alias, name string, closing bool) (string, bool) {
	for _, a := range aliases {
		if a.Alias != name {
			continue
		}
		if closing {
			return a.End, true
		}
		return a.ReplaceWith, true
	}
	return "", false
}

// ExpandAliases replaces alias macros in source in a single left-to-right scan.
//
// Escapes are skipped with SkipEscape, so \{name} is never expanded. A brace
// span that contains another '{' is not a macro; matching restarts at the
// inner brace. When a span names a known alias, every occurrence of that
// exact span text from the current position onward is replaced and the scan
// continues after the inserted text. Unknown names, unterminated braces and
// aliases with an empty replacement are left as they are.
//
// An unterminated bracketed escape returns an error wrapping
// ErrMalformedEscape.
func ExpandAliases(source string, aliases []Alias) (string, error) {
	if len(aliases) == 0 {
		return source, nil
	}

	s := source
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			end := SkipEscape(s, i)
			if end == MalformedEscapeIndex {
				return "", fmt.Errorf("%w at offset %d", ErrMalformedEscape, i)
			}
			i = end

		case '{':
			closing := i+1 < len(s) && s[i+1] == '/'
			for j := i + 1; j < len(s); j++ {
				if s[j] == '{' {
					// Restart at the inner brace; the loop increment is undone.
					i = j - 1
					break
				}
				if s[j] != '}' {
					continue
				}

				macro := s[i : j+1]
				name := macro[1 : len(macro)-1]
				if closing {
					name = name[1:]
				}
				repl, ok := lookupAlias(aliases, name, closing)
				if !ok || repl == "" {
					i = j
					break
				}
				s = s[:i] + strings.ReplaceAll(s[i:], macro, repl)
				i += len(repl) - 1
				break
			}
		}
	}
	return s, nil
}
