package md

// MalformedEscapeIndex is returned by SkipEscape for a bracketed escape whose
// braces never balance.
const MalformedEscapeIndex = -1

// SkipEscape returns the index of the last byte of the escape sequence that
// starts with the backslash at s[i].
//
//   - s[i] is not a backslash: i is returned unchanged.
//   - \x for any x other than '{': the escape is two bytes, i+1 is returned.
//   - \{...}: the index of the '}' that balances the opening brace is
//     returned. Nested braces are counted. If the braces never balance,
//     MalformedEscapeIndex is returned.
func SkipEscape(s string, i int) int {
	if i < 0 || i >= len(s) || s[i] != '\\' {
		return i
	}
	if i+1 >= len(s) || s[i+1] != '{' {
		return i + 1
	}

	depth := 0
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return MalformedEscapeIndex
}
