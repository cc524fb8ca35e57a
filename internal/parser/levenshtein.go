package parser

// levenshtein returns the edit distance between two strings, used to pick
// the canonical spelling closest to a fuzzy-matched text.
func levenshtein(s, t string) int {
	a := []rune(s)
	b := []rune(t)
	if len(b) == 0 {
		return len(a)
	}
	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
