package score

import (
	"sort"

	"github.com/ppiankov/wikiwire/internal/clean"
	"github.com/ppiankov/wikiwire/internal/model"
)

// Cluster groups near-duplicate candidates under one representative.
// TotalScore is always the sum of member scores; Tokens only grows.
type Cluster struct {
	Representative string
	TotalScore     int
	Tokens         map[string]struct{}
	Members        []model.Candidate

	best int // highest individual member score seen so far
}

// Jaccard computes |A∩B| / |A∪B| over two token sets.
// Two empty sets are identical (1.0); exactly one empty is disjoint (0.0).
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// JaccardText is Jaccard over the similarity token sets of two strings
func JaccardText(a, b string) float64 {
	return Jaccard(clean.SimilarityTokens(a), clean.SimilarityTokens(b))
}

// ClusterAndMerge greedily groups scored candidates by token overlap.
// Candidates are processed in input order: each joins the most similar
// existing cluster when the similarity reaches the threshold, otherwise
// opens a new one. The single pass trades global optimality for O(n*k)
// latency; the outcome is order dependent.
func ClusterAndMerge(scored []model.Candidate, threshold float64) []Cluster {
	var clusters []Cluster
	for _, cand := range scored {
		tok := clean.SimilarityTokens(cand.Text)
		bestSim, bestIdx := 0.0, -1
		for i := range clusters {
			if sim := Jaccard(tok, clusters[i].Tokens); sim > bestSim {
				bestSim, bestIdx = sim, i
			}
		}
		if bestIdx >= 0 && bestSim >= threshold {
			c := &clusters[bestIdx]
			for t := range tok {
				c.Tokens[t] = struct{}{}
			}
			c.TotalScore += cand.Score
			c.Members = append(c.Members, cand)
			if cand.Score > c.best {
				c.best = cand.Score
				c.Representative = cand.Text
			}
		} else {
			clusters = append(clusters, Cluster{
				Representative: cand.Text,
				TotalScore:     cand.Score,
				Tokens:         tok,
				Members:        []model.Candidate{cand},
				best:           cand.Score,
			})
		}
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].TotalScore > clusters[j].TotalScore
	})
	return clusters
}
