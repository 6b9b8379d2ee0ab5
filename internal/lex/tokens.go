package lex

// isIdentStart reports whether c can begin a C identifier.
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isIdentPart reports whether c can continue a C identifier.
func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// Identifiers returns every bare identifier token in text, in order of
// appearance. Tokens follow the C identifier grammar; no distinction is made
// between function names, macro names, type names, or variables.
func Identifiers(text string) []string {
	var ids []string
	for i := 0; i < len(text); {
		if !isIdentStart(text[i]) {
			// Skip past the rest of a number so "0x1f" does not yield "x1f".
			if text[i] >= '0' && text[i] <= '9' {
				for i < len(text) && isIdentPart(text[i]) {
					i++
				}
				continue
			}
			i++
			continue
		}
		start := i
		for i < len(text) && isIdentPart(text[i]) {
			i++
		}
		ids = append(ids, text[start:i])
	}
	return ids
}
