package score

import (
	"sort"
	"strings"

	"github.com/ppiankov/wikiwire/internal/clean"
	"github.com/ppiankov/wikiwire/internal/model"
)

// Fallback builds deterministic extractive headlines when the generation
// collaborator is unusable or the window is too sparse. It never returns
// an empty list for a non-empty window: top frequent content words are
// title-cased and chunked into short phrases, and if no eligible words
// exist at all it degrades to truncated raw snippets.
func Fallback(entries []model.NormalizedEvent, n, maxWords int) []string {
	type freq struct {
		word  string
		count int
		seen  int // first-seen index, keeps ranking deterministic
	}
	counts := make(map[string]*freq)
	var order []*freq
	var samples []string

	limit := len(entries)
	if limit > 12 {
		limit = 12
	}
	for _, e := range entries[:limit] {
		txt := clean.StripMarkup(e.Text())
		if txt != "" {
			samples = append(samples, txt)
		}
		for _, w := range clean.Tokens(txt) {
			if len(w) < 4 {
				continue
			}
			if f, ok := counts[w]; ok {
				f.count++
			} else {
				f := &freq{word: w, count: 1, seen: len(order)}
				counts[w] = f
				order = append(order, f)
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].seen < order[j].seen
	})
	if len(order) > 60 {
		order = order[:60]
	}
	tops := make([]string, len(order))
	for i, f := range order {
		tops[i] = titleCase(f.word)
	}

	var out []string
	for i := 0; len(out) < n && i < len(tops); i += maxWords {
		end := i + maxWords
		if end > len(tops) {
			end = len(tops)
		}
		if chunk := strings.TrimSpace(strings.Join(tops[i:end], " ")); chunk != "" {
			out = append(out, chunk)
		}
	}

	if len(out) == 0 {
		// absolute last resort: raw snippets
		for _, s := range samples {
			if len(s) > 60 {
				s = s[:60]
			}
			out = append(out, s)
			if len(out) >= n {
				break
			}
		}
	}
	return out
}

func titleCase(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
