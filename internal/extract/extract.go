package extract

import (
	"strings"

	"github.com/conorfennell/examprep/internal/domain"
)

// questionPrefix is matched against the trimmed, lower-cased line.
const questionPrefix = "q"

// Extract splits text into lines and pairs every line starting with "q" or
// "Q" with the line that follows it. A question on the last line gets an
// empty answer. The answer line is still considered as a question itself.
func Extract(text string) []domain.Pair {
	lines := strings.Split(text, "\n")
	var pairs []domain.Pair

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToLower(trimmed), questionPrefix) {
			continue
		}
		answer := ""
		if i+1 < len(lines) {
			answer = strings.TrimSpace(lines[i+1])
		}
		pairs = append(pairs, domain.Pair{Question: trimmed, Answer: answer})
	}

	return pairs
}
