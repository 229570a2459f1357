package score

import (
	"sort"

	"github.com/ppiankov/wikiwire/internal/clean"
	"github.com/ppiankov/wikiwire/internal/model"
)

// FusePhrasalDupes merges clusters whose representatives are paraphrases
// the token clusterer missed. Representatives are normalized to a fuzzy
// key and compared, in score order, against the keys already placed: the
// first bucket at or above the threshold wins. The merge is greedy and
// not transitive; chains of near-duplicates may land in separate buckets
// depending on order.
func FusePhrasalDupes(clusters []Cluster, threshold float64) []Cluster {
	type bucket struct {
		key string
		c   Cluster
	}
	var fused []bucket
	for _, in := range clusters {
		key := clean.FuzzyKey(in.Representative)
		placed := false
		for i := range fused {
			if lcsRatio(key, fused[i].key) >= threshold {
				f := &fused[i].c
				f.TotalScore += in.TotalScore
				f.Members = append(f.Members, in.Members...)
				if in.TotalScore > f.best {
					f.best = in.TotalScore
					f.Representative = in.Representative
				}
				placed = true
				break
			}
		}
		if !placed {
			fused = append(fused, bucket{key: key, c: Cluster{
				Representative: in.Representative,
				TotalScore:     in.TotalScore,
				Tokens:         in.Tokens,
				Members:        append([]model.Candidate(nil), in.Members...),
				best:           in.TotalScore,
			}})
		}
	}
	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].c.TotalScore > fused[j].c.TotalScore
	})
	out := make([]Cluster, len(fused))
	for i, f := range fused {
		out[i] = f.c
	}
	return out
}

// lcsRatio is a longest-common-subsequence similarity over runes:
// 2*LCS(a,b) / (len(a)+len(b)). 1.0 for identical strings, 0.0 for
// disjoint ones.
func lcsRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	lcs := prev[len(rb)]
	return 2.0 * float64(lcs) / float64(len(ra)+len(rb))
}
