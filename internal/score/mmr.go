package score

import (
	"sort"

	"github.com/ppiankov/wikiwire/internal/model"
)

// MMRSelect picks up to k candidates balancing relevance against
// diversity (maximal marginal relevance). Each round selects the item
// maximizing lambda*score - (1-lambda)*redundancy*score, where
// redundancy is the highest Jaccard similarity to anything already
// chosen. lambda 1.0 is pure relevance, 0.0 pure diversity.
func MMRSelect(candidates []model.Candidate, k int, lambda float64) []model.Candidate {
	pool := append([]model.Candidate(nil), candidates...)
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Score > pool[j].Score })

	var selected []model.Candidate
	for len(pool) > 0 && len(selected) < k {
		bestIdx, bestVal := -1, 0.0
		for i, cand := range pool {
			redundancy := 0.0
			for _, s := range selected {
				if sim := JaccardText(cand.Text, s.Text); sim > redundancy {
					redundancy = sim
				}
			}
			val := lambda*float64(cand.Score) - (1.0-lambda)*redundancy*float64(cand.Score)
			if bestIdx < 0 || val > bestVal {
				bestIdx, bestVal = i, val
			}
		}
		selected = append(selected, pool[bestIdx])
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
	}
	return selected
}
