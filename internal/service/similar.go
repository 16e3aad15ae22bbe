package service

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/tasktimer/internal/tasks"
)

// DefaultSimilarityThreshold is the minimum similarity for a create to be
// flagged as a likely duplicate.
const DefaultSimilarityThreshold = 0.85

// similarity is 1 - edit distance / longer length over normalized text.
func similarity(a, b string) float64 {
	a, b = normalizeText(a), normalizeText(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// similarTo returns the tasks in all (excluding skipID) whose text is at
// least threshold similar to text, most similar first.
func similarTo(all []tasks.Task, text, skipID string, threshold float64) []tasks.Task {
	type scored struct {
		task  tasks.Task
		score float64
	}
	var hits []scored
	for _, t := range all {
		if t.ID == skipID {
			continue
		}
		if s := similarity(text, t.Text); s >= threshold {
			hits = append(hits, scored{t, s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	out := make([]tasks.Task, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.task)
	}
	return out
}
