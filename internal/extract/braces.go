package extract

// balancedBraces returns the brace-delimited block starting at startPos,
// including both braces. It counts depth character by character and is
// not aware of string/char literals or comments; a brace inside a
// literal skews the depth. Known limitation of the heuristic extraction.
func balancedBraces(code string, startPos int) string {
	if startPos < 0 || startPos >= len(code) || code[startPos] != '{' {
		return ""
	}

	depth := 0
	for i := startPos; i < len(code); i++ {
		switch code[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return code[startPos : i+1]
			}
		}
	}
	return ""
}
