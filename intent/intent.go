package intent

import (
	"regexp"
	"strings"

	"github.com/micronauticals/txnquery/common/logger"
	"github.com/micronauticals/txnquery/schema"
)

// Decision is the outcome of mode classification.
type Decision struct {
	Mode   schema.Mode
	Reason string
}

// rule is one step of the classification cascade.
type rule struct {
	name  string
	mode  schema.Mode
	match func(lower string) bool
}

// Devanagari counting words cannot sit next to an ASCII word boundary,
// so those patterns anchor on whitespace instead of \b.
var countingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:how many|kitne|count|total)\s+.*?transaction`),
	regexp.MustCompile(`transaction.*?\b(?:how many|kitne|count|total)`),
	regexp.MustCompile(`(?:कितने|कितनी)\s*.*?(?:transaction|ट्रांज)`),
	regexp.MustCompile(`(?:transaction|ट्रांज).*?(?:कितने|कितनी)`),
	regexp.MustCompile(`\b(?:how|kitne)\s+many\b`),
	regexp.MustCompile(`\bnumber of\s+transaction`),
}

var (
	accountIDRe      = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
	accountKeywordRe = regexp.MustCompile(`\b(?:account|acc)\s*(?:number|no|#)?\b|खाता`)

	numberExcludeRe = regexp.MustCompile(`(?:account|transaction|reference)\s*number`)

	yearRe  = regexp.MustCompile(`\b(20\d{2})\b`)
	monthRe = regexp.MustCompile(`\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\b`)
)

var (
	accountListKeywords = []string{"transaction", "saari", "all", "list", "dikhao"}

	statsKeywords = []string{
		"total amount", "sum of", "average amount", "count of",
		"how many transactions", "kitne transactions",
	}

	fullScanKeywords = []string{
		"all", "saari", "sabhi", "sab", "every", "show me", "dikhao",
		"list", "display", "between", "above", "below", "largest", "smallest",
	}

	analyticalKeywords = []string{
		"summarize", "summarise", "summary", "analyze", "analyse", "analysis",
		"insights", "patterns", "trends", "overview", "explain", "tell me about",
		"what happened", "describe", "understand", "help me", "guide", "advice",
		"recommend", "suggest", "why", "how", "when", "where", "what",
		"batao", "samjhao", "bataiye", "explain karo", "kya hua",
	}
)

var cascade = []rule{
	{
		name: "counting",
		mode: schema.ModeVectorSearch,
		match: func(lower string) bool {
			return matchesCounting(lower)
		},
	},
	{
		name: "account listing",
		mode: schema.ModeSmartFull,
		match: func(lower string) bool {
			if !accountIDRe.MatchString(lower) && !accountKeywordRe.MatchString(lower) {
				return false
			}
			return containsAny(lower, accountListKeywords)
		},
	},
	{
		name: "pure statistics",
		mode: schema.ModeStatistical,
		match: func(lower string) bool {
			if numberExcludeRe.MatchString(lower) {
				return false
			}
			return containsAny(lower, statsKeywords)
		},
	},
	{
		name: "full scan",
		mode: schema.ModeSmartFull,
		match: func(lower string) bool {
			return containsAny(lower, fullScanKeywords)
		},
	},
	{
		name: "time period",
		mode: schema.ModeSmartFull,
		match: func(lower string) bool {
			if !yearRe.MatchString(lower) && !monthRe.MatchString(lower) {
				return false
			}
			return strings.Contains(lower, "transaction")
		},
	},
	{
		name: "analytical",
		mode: schema.ModeVectorSearch,
		match: func(lower string) bool {
			return matchesAnalytical(lower)
		},
	},
}

// Classify walks the cascade in priority order, first match wins.
// Open-ended questions fall through to VECTOR_SEARCH.
func Classify(question string) Decision {
	lower := strings.ToLower(question)
	for _, r := range cascade {
		if r.match(lower) {
			logger.Debugf("intent: matched rule %q -> %s", r.name, r.mode)
			return Decision{Mode: r.mode, Reason: r.name}
		}
	}
	return Decision{Mode: schema.ModeVectorSearch, Reason: "default"}
}

// IsCounting reports whether the question asks for a transaction count.
// Counting answers must be grounded in the full dataset, never a sample.
func IsCounting(question string) bool {
	return matchesCounting(strings.ToLower(question))
}

// IsAnalytical reports whether the question asks for a summary or
// analysis rather than specific records.
func IsAnalytical(question string) bool {
	return matchesAnalytical(strings.ToLower(question))
}

func matchesCounting(lower string) bool {
	for _, re := range countingPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

func matchesAnalytical(lower string) bool {
	return containsAny(lower, analyticalKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
