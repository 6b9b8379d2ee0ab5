package extract

// braceSpan walks forward from start, incrementing a counter on '{' and
// decrementing on '}'. It returns the index just past the brace that returns
// the counter to zero. If no opening brace follows start, or the counter
// never returns to zero before end of input, ok is false and the candidate
// should be discarded.
func braceSpan(content string, start int) (end int, ok bool) {
	depth := 0
	opened := false
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
			opened = true
		case '}':
			depth--
			if opened && depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}
