// Package extract segments stripped C-like source text into blocks: include
// directives, macro defines, type declarations, and named function bodies.
// Extraction is a best-effort lexical pass; malformed or unterminated
// candidates are dropped silently rather than reported.
package extract

import (
	"regexp"
	"strings"
)

// Blocks holds the extracted categories for one source file.
type Blocks struct {
	Headers   []string          // #include lines, in file order
	Defines   []string          // #define lines, in file order
	Types     []string          // struct/enum/union/typedef spans, as written
	Functions map[string]string // function name -> brace-balanced body span
	FuncOrder []string          // names in first-extraction order
}

var (
	// Function definition: return-type-like tokens starting at column 0, a
	// name, an argument list, and an opening brace. The column-0 anchor
	// keeps indented control statements (while, if) from matching.
	funcDefRe = regexp.MustCompile(`(?m)^[\w\*][\w \t\*]*[ \t]+(\w+)[ \t]*\([^)]*\)\s*\{`)

	// Braced type declaration header; the body is captured by brace scan.
	typeDefRe = regexp.MustCompile(`(?m)^(?:typedef\s+)?(?:struct|enum|union)\s*\w*\s*\{`)

	// Single-line typedef alias with no brace body.
	simpleTypedefRe = regexp.MustCompile(`(?m)^typedef[ \t][\w \t\*]+\w+[ \t]*;`)

	// Alias identifier and statement terminator after a braced type body.
	typeTailRe = regexp.MustCompile(`^\s*\w*\s*;`)
)

// Parse segments stripped source text into Blocks. It assumes comments were
// already removed; a comment containing a brace would otherwise corrupt the
// balance scan. Parsing the same text twice yields identical blocks.
func Parse(content string) *Blocks {
	b := &Blocks{Functions: make(map[string]string)}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#include") {
			b.Headers = append(b.Headers, line)
		}
		if strings.HasPrefix(line, "#define") {
			b.Defines = append(b.Defines, line)
		}
	}

	for _, loc := range typeDefRe.FindAllStringIndex(content, -1) {
		span, ok := typeSpan(content, loc[0], loc[1])
		if ok {
			b.Types = append(b.Types, span)
		}
	}
	for _, span := range simpleTypedefRe.FindAllString(content, -1) {
		b.Types = append(b.Types, span)
	}

	for _, loc := range funcDefRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[loc[2]:loc[3]]
		end, ok := braceSpan(content, loc[0])
		if !ok {
			continue
		}
		if _, seen := b.Functions[name]; !seen {
			b.FuncOrder = append(b.FuncOrder, name)
		}
		// A later definition with the same name wins.
		b.Functions[name] = content[loc[0]:end]
	}

	return b
}

// typeSpan extends a braced type header match through its matching close
// brace and the trailing alias/terminator. headerEnd is the index just past
// the opening brace.
func typeSpan(content string, start, headerEnd int) (string, bool) {
	end, ok := braceSpan(content, start)
	if !ok {
		return "", false
	}
	tail := typeTailRe.FindString(content[end:])
	if tail == "" {
		// No terminating semicolon: not a declaration we recognize.
		return "", false
	}
	return content[start : end+len(tail)], true
}

// IncludeTargets returns the include path strings from the captured header
// lines, without their <> or "" delimiters. Lines whose target cannot be
// delimited are skipped.
func (b *Blocks) IncludeTargets() []string {
	var targets []string
	for _, h := range b.Headers {
		rest := strings.TrimSpace(strings.TrimPrefix(h, "#include"))
		if len(rest) < 2 {
			continue
		}
		var closer byte
		switch rest[0] {
		case '<':
			closer = '>'
		case '"':
			closer = '"'
		default:
			continue
		}
		if i := strings.IndexByte(rest[1:], closer); i >= 0 {
			targets = append(targets, rest[1:1+i])
		}
	}
	return targets
}
