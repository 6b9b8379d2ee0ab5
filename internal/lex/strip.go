// Package lex provides the lexical primitives shared by the extraction
// pipeline: comment stripping, whitespace compaction, and identifier
// tokenization. All functions are pure.
package lex

import "strings"

// StripComments removes C-style comments from source text, replacing each
// comment region with a single space. Contents of single- and double-quoted
// literals pass through untouched, including escaped quote characters, so a
// comment marker inside a string is preserved verbatim.
func StripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	const (
		code = iota
		lineComment
		blockComment
		dquote
		squote
	)

	state := code
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch state {
		case code:
			switch {
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = lineComment
				i++
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = blockComment
				i++
			case c == '"':
				state = dquote
				b.WriteByte(c)
			case c == '\'':
				state = squote
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}
		case lineComment:
			if c == '\n' {
				b.WriteByte(' ')
				b.WriteByte('\n')
				state = code
			}
		case blockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				b.WriteByte(' ')
				i++
				state = code
			}
		case dquote:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				b.WriteByte(src[i+1])
				i++
			} else if c == '"' {
				state = code
			}
		case squote:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				b.WriteByte(src[i+1])
				i++
			} else if c == '\'' {
				state = code
			}
		}
	}

	// A line comment running to EOF still collapses to a space.
	if state == lineComment || state == blockComment {
		b.WriteByte(' ')
	}

	return b.String()
}

// CompactWhitespace minimizes text for token efficiency: blank lines are
// dropped and trailing whitespace is trimmed from every remaining line.
func CompactWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, strings.TrimRight(line, " \t\r"))
	}
	return strings.Join(out, "\n")
}
