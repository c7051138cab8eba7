package schema

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inr = message.NewPrinter(language.English)

// FormatINR renders an amount with grouped thousands and two decimals,
// e.g. ₹5,000.00.
func FormatINR(v float64) string {
	return inr.Sprintf("₹%.2f", v)
}

// Text renders the record as the multi-line block stored in the
// similarity index and embedded into generation prompts.
func (r Record) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Account Number: %s\n", orNA(r.AccountID))
	fmt.Fprintf(&b, "Transaction ID: %s\n", orNA(r.ID))
	fmt.Fprintf(&b, "Date: %s\n", orNA(r.Timestamp))
	fmt.Fprintf(&b, "Amount: %s\n", FormatINR(r.Amount))
	fmt.Fprintf(&b, "Current Balance: %s\n", FormatINR(r.Balance))
	fmt.Fprintf(&b, "Mode: %s\n", orNA(r.Mode))
	fmt.Fprintf(&b, "Narration: %s\n", orNA(r.Narration))
	fmt.Fprintf(&b, "Reference: %s\n", orNA(r.Reference))
	fmt.Fprintf(&b, "Transaction Type: %s\n", orNA(r.Type))
	return b.String()
}

// DateOnly returns the YYYY-MM-DD prefix of the timestamp, or "" when the
// timestamp is shorter than a date.
func (r Record) DateOnly() string {
	if len(r.Timestamp) < 10 {
		return ""
	}
	return r.Timestamp[:10]
}

// MonthKey returns the YYYY-MM prefix of the timestamp for monthly
// breakdowns, or "" when unavailable.
func (r Record) MonthKey() string {
	if len(r.Timestamp) < 7 {
		return ""
	}
	return r.Timestamp[:7]
}
