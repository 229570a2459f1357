package clean

// Vocabulary sets are configuration data, not logic. They exist so
// high-churn wiki process terms never influence similarity or scoring.

// Stopwords are generic editing-process terms
var Stopwords = newSet(
	"wikipedia", "wikiproject", "project", "article", "articles", "editor", "editors", "edited",
	"update", "updates", "revised", "revision", "page", "pages", "talk", "section", "content",
	"reference", "references", "citation", "citations", "category", "categories", "template", "templates",
)

// AdminTerms are administrative/process terms
var AdminTerms = newSet(
	"talk", "draft", "notification", "redirects", "discussion", "rfd", "afd",
	"template", "category", "wikidata", "citation", "references", "log", "banner",
)

// excludeTokens bias clustering and are dropped during normalization
var excludeTokens = newSet("whatlinkshere", "special", "category", "categories", "wp")

// namespacePrefixes are stripped from the start of titles ("Talk:Page" -> "Page")
var namespacePrefixes = newSet(
	"special", "user", "user talk", "talk", "wikipedia", "file", "template",
	"help", "category", "portal", "book", "draft", "timedtext", "module",
	"mediawiki",
)

func newSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Vocab reports whether a token belongs to the stop or admin vocabulary
func Vocab(token string) bool {
	if _, ok := Stopwords[token]; ok {
		return true
	}
	_, ok := AdminTerms[token]
	return ok
}
