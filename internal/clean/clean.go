// Package clean normalizes wiki titles and edit summaries for scoring
// and clustering. Normalization is aggressive: the output is a word soup
// for topic work, not display text.
package clean

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reLinks       = regexp.MustCompile(`\[\[|\]\]|\{\{|\}\}`)
	reURL         = regexp.MustCompile(`https?://\S+`)
	reSpaces      = regexp.MustCompile(`\s+`)
	reNamespace   = regexp.MustCompile(`^([^:]+):(.*)$`)
	reNonLetASCII = regexp.MustCompile(`[^A-Za-z ]+`)
	reWords3      = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
)

// CollapseSpaces normalizes whitespace to single spaces and strips ends
func CollapseSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

func asciiWordsOnly(s string) string {
	return CollapseSpaces(reNonLetASCII.ReplaceAllString(s, " "))
}

func dropExcludedTokens(text string) string {
	parts := strings.Fields(text)
	kept := parts[:0]
	for _, w := range parts {
		if _, ok := excludeTokens[strings.ToLower(w)]; !ok {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// Title strips namespace prefixes, slashes and markup from a page title
// and returns ASCII words suited for topic clustering.
func Title(title string) string {
	t := strings.TrimSpace(title)
	if m := reNamespace.FindStringSubmatch(t); m != nil {
		if _, ok := namespacePrefixes[strings.ToLower(m[1])]; ok {
			t = m[2]
		}
	}
	t = strings.ReplaceAll(t, "/", " ")
	return dropExcludedTokens(asciiWordsOnly(t))
}

// Comment removes wiki links, URLs and admin noise from an edit summary
func Comment(comment string) string {
	c := reLinks.ReplaceAllString(comment, " ")
	c = reURL.ReplaceAllString(c, " ")
	return dropExcludedTokens(asciiWordsOnly(c))
}

// StripMarkup removes links/URLs/extra spaces but keeps letters intact;
// used for collaborator previews where the text stays display-safe.
func StripMarkup(text string) string {
	t := reLinks.ReplaceAllString(text, " ")
	t = reURL.ReplaceAllString(t, " ")
	return CollapseSpaces(t)
}

// Tokens returns lowercase alphabetic runs of length >= 3 outside the
// stop/admin vocabulary, in text order.
func Tokens(text string) []string {
	var out []string
	for _, w := range reWords3.FindAllString(strings.ToLower(text), -1) {
		if !Vocab(w) {
			out = append(out, w)
		}
	}
	return out
}

// SimilarityTokens builds the comparison token set for Jaccard clustering:
// lowercase words of length >= 4 plus adjacent-pair bigrams, excluding
// stop/admin vocabulary on the unigram head. Display text is untouched.
func SimilarityTokens(text string) map[string]struct{} {
	t := StripMarkup(strings.ToLower(text))
	var words []string
	for _, w := range strings.Fields(reNonLetASCII.ReplaceAllString(t, " ")) {
		if len(w) >= 4 {
			words = append(words, w)
		}
	}
	grams := make(map[string]struct{}, len(words)*2)
	for _, w := range words {
		grams[w] = struct{}{}
	}
	for i := 0; i+1 < len(words); i++ {
		grams[words[i]+"_"+words[i+1]] = struct{}{}
	}
	for g := range grams {
		head := g
		if i := strings.IndexByte(g, '_'); i >= 0 {
			head = g[:i]
		}
		if Vocab(head) {
			delete(grams, g)
		}
	}
	return grams
}

// FuzzyKey normalizes a string for phrasal near-duplicate matching:
// diacritics stripped, only letters/digits/apostrophes/spaces kept,
// lowercased, whitespace collapsed.
func FuzzyKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark: drop
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(stripDiacritic(unicode.ToLower(r)))
		case r == '\'':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return CollapseSpaces(b.String())
}

// stripDiacritic maps common Latin-1/Latin Extended letters onto their
// ASCII base. Anything unknown passes through unchanged.
func stripDiacritic(r rune) rune {
	if r < 0x80 {
		return r
	}
	if mapped, ok := diacriticFold[r]; ok {
		return mapped
	}
	return r
}

var diacriticFold = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a', 'ā': 'a', 'ă': 'a', 'ą': 'a',
	'ç': 'c', 'ć': 'c', 'č': 'c',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e', 'ē': 'e', 'ė': 'e', 'ę': 'e', 'ě': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i', 'į': 'i',
	'ñ': 'n', 'ń': 'n', 'ň': 'n',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o', 'ø': 'o', 'ō': 'o', 'ő': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u', 'ů': 'u', 'ű': 'u',
	'ý': 'y', 'ÿ': 'y',
	'ś': 's', 'š': 's', 'ş': 's',
	'ź': 'z', 'ż': 'z', 'ž': 'z',
	'ł': 'l', 'đ': 'd', 'ð': 'd', 'þ': 't', 'ß': 's',
	'ğ': 'g', 'ř': 'r', 'ť': 't', 'ď': 'd',
}
