package sentiment

import (
	"context"
	"math"
	"strings"
)

// LexiconAnalyzer is the built-in fallback scorer used when no remote
// endpoint is configured. Valence words are summed, simple negation
// flips the sign of the following hit, and the raw sum is squashed into
// [-1, 1] with the usual alpha normalization.
type LexiconAnalyzer struct{}

// NewLexiconAnalyzer returns the built-in analyzer
func NewLexiconAnalyzer() *LexiconAnalyzer {
	return &LexiconAnalyzer{}
}

const normAlpha = 15.0

// Compound scores text against the embedded valence lexicon
func (l *LexiconAnalyzer) Compound(_ context.Context, text string) (float64, error) {
	sum := 0.0
	negate := false
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:'\"()[]")
		if _, neg := negations[w]; neg {
			negate = true
			continue
		}
		if v, ok := valence[w]; ok {
			if negate {
				v = -v
			}
			sum += v
		}
		negate = false
	}
	if sum == 0 {
		return 0, nil
	}
	return sum / math.Sqrt(sum*sum+normAlpha), nil
}

var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "without": {}, "neither": {}, "nor": {},
	"cannot": {}, "can't": {}, "won't": {}, "don't": {}, "doesn't": {}, "didn't": {},
	"isn't": {}, "wasn't": {}, "aren't": {},
}

// valence is a compact subset of the usual social-media lexicon; scores
// roughly on the VADER scale (-4..4).
var valence = map[string]float64{
	"good": 1.9, "great": 3.1, "excellent": 2.7, "best": 3.2, "better": 1.9,
	"win": 2.8, "wins": 2.7, "won": 2.7, "winner": 2.8, "victory": 2.9,
	"success": 2.7, "successful": 2.8, "improve": 1.9, "improved": 2.1, "improvement": 1.9,
	"celebrate": 2.7, "celebrated": 2.7, "award": 2.5, "awarded": 2.5, "honor": 2.3,
	"praise": 2.6, "praised": 2.6, "love": 3.2, "loved": 2.9, "beautiful": 2.9,
	"peace": 2.5, "peaceful": 2.5, "agreement": 1.8, "growth": 1.9, "thriving": 2.6,
	"happy": 2.7, "joy": 2.9, "hope": 1.9, "hopeful": 2.2, "strong": 2.3,
	"record": 1.2, "milestone": 1.6, "landmark": 1.4, "breakthrough": 2.4, "historic": 1.5,
	"rescue": 1.9, "rescued": 2.0, "saved": 2.2, "recovery": 1.8, "recovered": 1.9,
	"bad": -2.5, "worst": -3.1, "worse": -2.1, "terrible": -2.9, "awful": -2.7,
	"lose": -2.0, "loses": -2.0, "lost": -1.9, "loss": -1.9, "defeat": -2.3,
	"fail": -2.5, "fails": -2.5, "failed": -2.3, "failure": -2.6, "crisis": -2.6,
	"war": -2.9, "wars": -2.9, "conflict": -2.2, "attack": -2.6, "attacks": -2.6,
	"attacked": -2.6, "violence": -3.1, "violent": -2.9, "riot": -2.7, "riots": -2.7,
	"dead": -3.3, "death": -2.9, "deaths": -2.9, "die": -2.9, "died": -2.9, "dies": -2.9,
	"kill": -3.4, "killed": -3.4, "killing": -3.4, "murder": -3.5, "murdered": -3.5,
	"disaster": -3.1, "catastrophe": -3.3, "tragedy": -3.4, "tragic": -3.3,
	"storm": -1.4, "flood": -1.8, "earthquake": -2.0, "fire": -1.6, "crash": -2.4,
	"scandal": -2.2, "fraud": -2.8, "corrupt": -2.7, "corruption": -2.7,
	"disease": -2.3, "outbreak": -2.1, "injured": -2.1, "injury": -1.9, "wounded": -2.3,
	"threat": -2.1, "threats": -2.1, "fear": -2.2, "panic": -2.5, "collapse": -2.4,
	"ban": -1.6, "banned": -1.6, "dispute": -1.5, "controversy": -1.6, "controversial": -1.4,
	"arrest": -2.0, "arrested": -2.0, "protest": -1.3, "protests": -1.3,
}
