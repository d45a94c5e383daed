package philosopher

import (
	"strings"

	"assessment-forge/internal/domain"
)

// Compare diffs two drafts (original vs. rewritten) post-rewrite:
// Bloom distribution, question count, average prompt word count, and
// redundancy count.
func Compare(original, rewritten []domain.GeneratedItem) domain.CompareReport {
	origDist := bloomDistribution(original)
	newDist := bloomDistribution(rewritten)

	diff := map[domain.BloomLevel]int{}
	for _, lvl := range domain.BloomLevels {
		d := newDist[lvl] - origDist[lvl]
		if d != 0 {
			diff[lvl] = d
		}
	}

	return domain.CompareReport{
		BloomDistributionDiff:  diff,
		QuestionCountDiff:      len(rewritten) - len(original),
		AvgPromptWordCountDiff: avgWordCount(rewritten) - avgWordCount(original),
		RedundancyCountDiff:    redundancyCount(rewritten) - redundancyCount(original),
	}
}

func avgWordCount(items []domain.GeneratedItem) float64 {
	if len(items) == 0 {
		return 0
	}
	total := 0
	for _, item := range items {
		total += len(strings.Fields(item.Prompt))
	}
	return float64(total) / float64(len(items))
}

func redundancyCount(items []domain.GeneratedItem) int {
	sets := make([]map[string]bool, len(items))
	for i, item := range items {
		set := map[string]bool{}
		for _, w := range strings.Fields(strings.ToLower(item.Prompt)) {
			if len(w) > 4 {
				set[w] = true
			}
		}
		sets[i] = set
	}
	count := 0
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			if overlap(sets[i], sets[j]) > 0.7 {
				count++
			}
		}
	}
	return count
}

func overlap(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for w := range a {
		if b[w] {
			shared++
		}
	}
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	return float64(shared) / float64(smaller)
}
