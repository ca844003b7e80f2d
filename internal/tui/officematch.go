package tui

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/urna/internal/voting"
)

// bestOfficeMatch returns the index of the office that best matches the
// typed query, or -1. A name prefix beats a substring, which beats the
// smallest edit distance to the name's leading runes. Ties keep list order.
func bestOfficeMatch(offices []voting.Office, query string) int {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(q) == 0 {
		return -1
	}
	best, bestScore := -1, 0
	for i, o := range offices {
		score, ok := officeScore(strings.ToLower(o.Name), q)
		if !ok {
			continue
		}
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func officeScore(name string, q []rune) (int, bool) {
	query := string(q)
	switch {
	case strings.HasPrefix(name, query):
		return 0, true
	case strings.Contains(name, query):
		return 1, true
	}
	head := []rune(name)
	if len(head) > len(q) {
		head = head[:len(q)]
	}
	dist := levenshtein.ComputeDistance(query, string(head))
	if dist > len(q)/2 {
		return 0, false
	}
	return 2 + dist, true
}
