package filter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/micronauticals/txnquery/schema"
)

// Extract parses a free-text question into a structured filter set. The
// question may mix English, Devanagari Hindi and Romanized Hindi.
// Extraction is a pure function: malformed tokens are skipped, never fatal.
func Extract(question string) schema.FilterSet {
	var f schema.FilterSet
	lower := strings.ToLower(question)

	f.Date = extractDate(lower)
	extractAmounts(lower, &f)
	f.Mode = extractMode(lower)
	f.Type = extractType(lower)
	f.AccountID = extractAccount(lower)
	f.PersonName, f.StrictName = extractPerson(question)
	return f
}

// monthToken pairs a month name with its number. Scanned in order; the
// full English name precedes its abbreviation so "march" wins over "mar".
type monthToken struct {
	name  string
	month int
}

var monthLexicon = []monthToken{
	{"january", 1}, {"jan", 1}, {"जनवरी", 1},
	{"february", 2}, {"feb", 2}, {"फरवरी", 2},
	{"march", 3}, {"mar", 3}, {"मार्च", 3},
	{"april", 4}, {"apr", 4}, {"अप्रैल", 4},
	{"may", 5}, {"मई", 5},
	{"june", 6}, {"jun", 6}, {"जून", 6},
	{"july", 7}, {"jul", 7}, {"जुलाई", 7},
	{"august", 8}, {"aug", 8}, {"अगस्त", 8},
	{"september", 9}, {"sep", 9}, {"सितंबर", 9},
	{"october", 10}, {"oct", 10}, {"अक्टूबर", 10},
	{"november", 11}, {"nov", 11}, {"नवंबर", 11},
	{"december", 12}, {"dec", 12}, {"दिसंबर", 12},
}

var bareYearRe = regexp.MustCompile(`\b(20\d{2})\b`)

// extractDate scans the month lexicon, first match wins. A 4-digit year
// directly after the matched month token is captured with it; with no
// month at all, a bare 20xx token becomes a year-only filter.
func extractDate(lower string) *schema.DateFilter {
	for _, tok := range monthLexicon {
		if !strings.Contains(lower, tok.name) {
			continue
		}
		date := &schema.DateFilter{Month: tok.month}
		yearRe := regexp.MustCompile(regexp.QuoteMeta(tok.name) + `\s*(\d{4})`)
		if m := yearRe.FindStringSubmatch(lower); m != nil {
			if y, err := strconv.Atoi(m[1]); err == nil {
				date.Year = y
			}
		}
		return date
	}
	if m := bareYearRe.FindStringSubmatch(lower); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			return &schema.DateFilter{Year: y}
		}
	}
	return nil
}

var (
	numberRe = regexp.MustCompile(`\d+(?:,\d+)*(?:\.\d+)?[kl]?`)
	yearLike = regexp.MustCompile(`^202[0-9]$`)

	aboveKeywords = []string{"above", "greater than", "more than", "over", "zyada"}
	belowKeywords = []string{"below", "less than", "under", "kam"}
)

// extractAmounts collects numeric tokens (thousands separators, decimals
// and k/l shorthand for ×1,000 / ×100,000) and interprets them by
// priority: an explicit "between" range first, then an exclusive lower
// bound, then an exclusive upper bound. Tokens shaped like a 202x year
// never enter the amount pool.
func extractAmounts(lower string, f *schema.FilterSet) {
	var amounts []float64
	for _, tok := range numberRe.FindAllString(lower, -1) {
		clean := strings.ReplaceAll(tok, ",", "")
		if yearLike.MatchString(clean) {
			continue
		}
		multiplier := 1.0
		switch {
		case strings.HasSuffix(clean, "k"):
			clean = strings.TrimSuffix(clean, "k")
			multiplier = 1_000
		case strings.HasSuffix(clean, "l"):
			clean = strings.TrimSuffix(clean, "l")
			multiplier = 100_000
		}
		v, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			continue
		}
		amounts = append(amounts, v*multiplier)
	}

	switch {
	case strings.Contains(lower, "between") && len(amounts) >= 2:
		lo, hi := amounts[0], amounts[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		f.AmountRange = &schema.AmountRange{Min: lo, Max: hi}
	case containsAny(lower, aboveKeywords) && len(amounts) > 0:
		f.AmountAbove = &amounts[0]
	case containsAny(lower, belowKeywords) && len(amounts) > 0:
		f.AmountBelow = &amounts[0]
	}
}

// transactionModes is the fixed mode vocabulary, scanned in order.
var transactionModes = []string{"UPI", "CASH", "NEFT", "IMPS", "RTGS", "DEBIT CARD", "CREDIT CARD"}

func extractMode(lower string) string {
	for _, mode := range transactionModes {
		if strings.Contains(lower, strings.ToLower(mode)) {
			return mode
		}
	}
	return ""
}

var (
	creditKeywords = []string{"credit", "credited", "क्रेडिट"}
	debitKeywords  = []string{"debit", "debited", "डेबिट"}
)

// extractType checks credit keywords before debit keywords.
func extractType(lower string) string {
	if containsAny(lower, creditKeywords) {
		return "CREDIT"
	}
	if containsAny(lower, debitKeywords) {
		return "DEBIT"
	}
	return ""
}

var (
	uuidRe           = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
	accountKeywordRe = regexp.MustCompile(`(?:account|acc|खाता)\s*(?:number|no|#)?\s*[:=]?\s*([a-zA-Z0-9\-]+)`)
)

// extractAccount prefers a UUID-shaped token anywhere in the question,
// falling back to a keyword-anchored capture.
func extractAccount(lower string) string {
	if m := uuidRe.FindString(lower); m != "" {
		return m
	}
	if m := accountKeywordRe.FindStringSubmatch(lower); m != nil {
		return m[1]
	}
	return ""
}

var (
	strictNameRe = regexp.MustCompile(`(?:by|from|to|with|se|ko|द्वारा)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`)
	looseNameRe  = regexp.MustCompile(`(?:by|from|to|with|se|ko|द्वारा)\s+([A-Z][a-z]+)`)
)

// extractPerson runs on the original casing. Two or more consecutive
// capitalized words after a preposition form a strict full-name filter;
// a single capitalized word is only a loose filter.
func extractPerson(question string) (string, bool) {
	if m := strictNameRe.FindStringSubmatch(question); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := looseNameRe.FindStringSubmatch(question); m != nil {
		return strings.TrimSpace(m[1]), false
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
