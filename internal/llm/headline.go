package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/wikiwire/internal/clean"
	"github.com/ppiankov/wikiwire/internal/model"
)

// offLimit tokens disqualify a generated headline entirely
var offLimit = map[string]struct{}{
	"masturbate": {}, "masturbation": {}, "porn": {}, "pornography": {}, "xxx": {},
	"sex": {}, "sexual": {}, "fetish": {}, "nsfw": {},
}

// banWords are boilerplate/namespace tokens dropped from generations
var banWords = map[string]struct{}{
	"whatlinkshere": {}, "special": {}, "wikiproject": {}, "talk": {},
	"articles": {}, "class": {}, "stub": {}, "category": {}, "categories": {}, "wp": {},
}

var (
	reClutter   = regexp.MustCompile(`\[\[|\]\]|\{|\}|\(|\)|<|>|https?://\S+`)
	reQuotes    = strings.NewReplacer("“", " ", "”", " ", "«", " ", "»", " ", `"`, " ")
	reWordApos  = regexp.MustCompile(`\b[a-z']+\b`)
	reJSONArray = regexp.MustCompile(`(?s)\[.*\]`)
	reWords5    = regexp.MustCompile(`\b[a-zA-Z]{5,}\b`)
)

// DecodeHeadlineList is the single best-effort decoder for model output.
// It accepts a JSON array of strings, a JSON object (values taken in key
// order), or a JSON array embedded in surrounding prose. Anything else
// is a decode failure.
func DecodeHeadlineList(text string) ([]string, error) {
	if items, ok := decodeJSONStrings([]byte(text)); ok {
		return items, nil
	}
	if m := reJSONArray.FindString(text); m != "" {
		var arr []interface{}
		if err := json.Unmarshal([]byte(m), &arr); err == nil {
			return stringsFromValues(arr), nil
		}
	}
	return nil, fmt.Errorf("no headline list in model output")
}

func decodeJSONStrings(data []byte) ([]string, bool) {
	var arr []interface{}
	if err := json.Unmarshal(data, &arr); err == nil {
		return stringsFromValues(arr), true
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err == nil {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		vals := make([]interface{}, 0, len(obj))
		for _, k := range keys {
			vals = append(vals, obj[k])
		}
		return stringsFromValues(vals), true
	}
	return nil, false
}

func stringsFromValues(vals []interface{}) []string {
	var out []string
	for _, v := range vals {
		switch x := v.(type) {
		case string:
			out = append(out, x)
		case float64:
			out = append(out, fmt.Sprintf("%v", x))
		}
	}
	return out
}

// CleanHeadline strips clutter from one generated headline, drops banned
// tokens, caps the word count and requires at least two words (noun
// phrases are fine). Apostrophes and hyphens survive.
func CleanHeadline(h string, maxWords int) string {
	// tolerate a dict-shaped reply for a single headline
	if strings.HasPrefix(strings.TrimSpace(h), "{") {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(h), &obj); err == nil {
			var parts []string
			keys := make([]string, 0, len(obj))
			for k := range obj {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if s, ok := obj[k].(string); ok {
					parts = append(parts, s)
				}
			}
			h = strings.Join(parts, " ")
		}
	}

	h = reClutter.ReplaceAllString(h, " ")
	h = reQuotes.Replace(h)
	h = clean.CollapseSpaces(h)

	var words []string
	for _, w := range strings.Fields(h) {
		if _, banned := banWords[strings.ToLower(w)]; !banned {
			words = append(words, w)
		}
		if len(words) == maxWords {
			break
		}
	}
	if len(words) < 2 {
		return ""
	}

	h = strings.Join(words, " ")
	h = strings.ToUpper(h[:1]) + h[1:]
	return strings.Trim(h, " -:")
}

// Sanitize returns "" when the headline contains off-limit vocabulary
func Sanitize(h string) string {
	for _, tok := range reWordApos.FindAllString(strings.ToLower(h), -1) {
		if _, bad := offLimit[tok]; bad {
			return ""
		}
	}
	return h
}

// BatchContext summarizes a window for the model: the most common long
// words plus a few trimmed examples, capped at maxChars.
func BatchContext(entries []model.NormalizedEvent, maxChars int) string {
	type wordCount struct {
		word  string
		count int
		seen  int
	}
	counts := make(map[string]*wordCount)
	var order []*wordCount
	var examples []string

	limit := len(entries)
	if limit > 8 {
		limit = 8
	}
	for _, e := range entries[:limit] {
		txt := clean.StripMarkup(e.Title + ": " + e.Comment)
		if len(txt) > 140 {
			txt = txt[:140] + "..."
		}
		examples = append(examples, txt)
		for _, w := range reWords5.FindAllString(txt, -1) {
			lw := strings.ToLower(w)
			if wc, ok := counts[lw]; ok {
				wc.count++
			} else {
				wc := &wordCount{word: lw, count: 1, seen: len(order)}
				counts[lw] = wc
				order = append(order, wc)
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].seen < order[j].seen
	})
	if len(order) > 15 {
		order = order[:15]
	}
	common := make([]string, len(order))
	for i, wc := range order {
		common[i] = wc.word
	}

	blob := "Common terms: " + strings.Join(common, ", ") + "\nExamples:\n- " + strings.Join(examples, "\n- ")
	if len(blob) > maxChars {
		blob = blob[:maxChars]
	}
	return blob
}

// batchRules builds the shared newsroom-style rule block
func batchRules(maxWords int) string {
	return fmt.Sprintf(
		"Write newsroom-style headlines. Each headline must be either: "+
			"(a) a concise, grammatical sentence, OR (b) a clean noun phrase. "+
			"Hard cap: %d words or fewer. Professional tone. No slang, no emojis. "+
			"Letters and spaces only (keep apostrophes and hyphens). "+
			"Avoid bare namespaces (Category, Talk, WikiProject) and boilerplate. "+
			"Do NOT use explicit/sexual/profane words. "+
			"Do NOT mention 'Wikipedia', 'WikiProject', 'Talk', 'Draft', or page names. "+
			"Return a JSON array of strings only.", maxWords)
}

// editRules builds the single-headline rule block for per-edit mode
func editRules(maxWords int) string {
	return fmt.Sprintf(
		"You are a news headline writer. Create a single, concise, engaging headline "+
			"about the subject of an encyclopedia article being edited. Rules: present tense; "+
			"%d words or fewer; compelling but accurate. "+
			"DO NOT mention 'Wikipedia', 'WikiProject', 'Talk', 'Draft', or 'Redirects'. "+
			"Focus on the article's SUBJECT MATTER as if reporting news about that topic. "+
			"RESPOND ONLY WITH the headline.", maxWords)
}
