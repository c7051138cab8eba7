package filter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/micronauticals/txnquery/schema"
)

var monthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Apply narrows a record set with sequential AND composition in fixed
// order: date, mode, type, amount, account, person name. The returned
// slice preserves input order. The second return value lists one
// human-readable description per applied filter, in the same order.
// An empty intermediate result still flows through the later stages.
func Apply(records []schema.Record, f schema.FilterSet) ([]schema.Record, []string) {
	filtered := records
	var descriptions []string

	if f.Date != nil {
		filtered = filterDate(filtered, *f.Date)
		switch {
		case f.Date.Month > 0 && f.Date.Year > 0:
			descriptions = append(descriptions, fmt.Sprintf("Date: %s %d", monthNames[f.Date.Month-1], f.Date.Year))
		case f.Date.Year > 0:
			descriptions = append(descriptions, fmt.Sprintf("Year: %d", f.Date.Year))
		}
	}

	if f.Mode != "" {
		filtered = keep(filtered, func(r schema.Record) bool {
			return strings.EqualFold(r.Mode, f.Mode)
		})
		descriptions = append(descriptions, "Mode: "+f.Mode)
	}

	if f.Type != "" {
		filtered = keep(filtered, func(r schema.Record) bool {
			return strings.Contains(r.Type, f.Type)
		})
		descriptions = append(descriptions, "Type: "+f.Type)
	}

	// Amount interpretations are mutually exclusive: range wins over
	// above, above over below. Range bounds are inclusive; above and
	// below are strict inequalities.
	switch {
	case f.AmountRange != nil:
		lo, hi := f.AmountRange.Min, f.AmountRange.Max
		filtered = keep(filtered, func(r schema.Record) bool {
			return r.Amount >= lo && r.Amount <= hi
		})
		descriptions = append(descriptions, fmt.Sprintf("Amount: %s - %s", schema.FormatINR(lo), schema.FormatINR(hi)))
	case f.AmountAbove != nil:
		threshold := *f.AmountAbove
		filtered = keep(filtered, func(r schema.Record) bool {
			return r.Amount > threshold
		})
		descriptions = append(descriptions, "Amount above: "+schema.FormatINR(threshold))
	case f.AmountBelow != nil:
		threshold := *f.AmountBelow
		filtered = keep(filtered, func(r schema.Record) bool {
			return r.Amount < threshold
		})
		descriptions = append(descriptions, "Amount below: "+schema.FormatINR(threshold))
	}

	if f.AccountID != "" {
		filtered = keep(filtered, func(r schema.Record) bool {
			return strings.EqualFold(r.AccountID, f.AccountID)
		})
		descriptions = append(descriptions, "Account: "+f.AccountID)
	}

	if f.PersonName != "" {
		filtered = filterPerson(filtered, f.PersonName, f.StrictName)
		if f.StrictName {
			descriptions = append(descriptions, fmt.Sprintf("EXACT name: '%s'", f.PersonName))
		} else {
			descriptions = append(descriptions, fmt.Sprintf("Person: '%s'", f.PersonName))
		}
	}

	return filtered, descriptions
}

// filterDate compares the YYYY-MM-DD prefix of each timestamp.
// Unparsable dates are treated as non-matching, not as an error.
func filterDate(records []schema.Record, date schema.DateFilter) []schema.Record {
	return keep(records, func(r schema.Record) bool {
		prefix := r.DateOnly()
		if prefix == "" {
			return false
		}
		ts, err := time.Parse("2006-01-02", prefix)
		if err != nil {
			return false
		}
		if date.Year > 0 && ts.Year() != date.Year {
			return false
		}
		if date.Month > 0 && int(ts.Month()) != date.Month {
			return false
		}
		return true
	})
}

// filterPerson matches names in the narration. Strict matching requires
// the full whitespace-delimited name as a case-insensitive,
// word-boundary-anchored word sequence; loose matching is plain
// case-insensitive containment.
func filterPerson(records []schema.Record, name string, strict bool) []schema.Record {
	words := strings.Fields(name)
	if strict && len(words) >= 2 {
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		nameRe := regexp.MustCompile(`(?i)\b` + strings.Join(quoted, `\s+`) + `\b`)
		return keep(records, func(r schema.Record) bool {
			return nameRe.MatchString(r.Narration)
		})
	}
	lowered := strings.ToLower(name)
	return keep(records, func(r schema.Record) bool {
		return strings.Contains(strings.ToLower(r.Narration), lowered)
	})
}

func keep(records []schema.Record, pred func(schema.Record) bool) []schema.Record {
	out := make([]schema.Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
