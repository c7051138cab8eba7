package answer

import (
	"fmt"
	"strings"

	"github.com/micronauticals/txnquery/schema"
)

// StatisticalAnswer renders the numeric summary for statistical
// questions. No text generation is involved.
func StatisticalAnswer(reg Register, stats schema.Statistics, descriptions []string) string {
	filterText := ""
	if len(descriptions) > 0 {
		filterText = " (" + strings.Join(descriptions, ", ") + ")"
	}

	if reg == RegisterHindi {
		var b strings.Builder
		fmt.Fprintf(&b, "📊 सांख्यिकी%s:\n", filterText)
		fmt.Fprintf(&b, "• कुल: %d\n", stats.Count)
		fmt.Fprintf(&b, "• राशि: %s\n", schema.FormatINR(stats.Total))
		fmt.Fprintf(&b, "• औसत: %s\n", schema.FormatINR(stats.Average))
		return b.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Statistics%s:\n", filterText)
	fmt.Fprintf(&b, "• Total: %d\n", stats.Count)
	fmt.Fprintf(&b, "• Amount: %s\n", schema.FormatINR(stats.Total))
	fmt.Fprintf(&b, "• Average: %s\n", schema.FormatINR(stats.Average))
	return b.String()
}

// NoMatchAnswer is the templated reply when filters match nothing.
func NoMatchAnswer(reg Register) string {
	switch reg {
	case RegisterHindi:
		return "मुझे आपके सवाल से मेल खाने वाली कोई ट्रांज़ैक्शन नहीं मिली। 😊"
	case RegisterHinglish:
		return "Sorry! 😊 Aapke filters ke hisaab se koi transaction nahi mili."
	default:
		return "No transactions found matching your query."
	}
}

// FallbackSummary is the templated reply used when no text generator is
// configured for a filtered listing.
func FallbackSummary(reg Register, count int, total, average float64) string {
	switch reg {
	case RegisterHindi:
		return fmt.Sprintf("नमस्ते! 😊 %d ट्रांज़ैक्शन मिली हैं।\n\n📊 सारांश:\n   • कुल राशि: %s\n   • औसत: %s",
			count, schema.FormatINR(total), schema.FormatINR(average))
	case RegisterHinglish:
		return fmt.Sprintf("Namaste! 😊 Maine %d transactions nikali hain.\n\n📊 Summary:\n   • Total: %s\n   • Average: %s",
			count, schema.FormatINR(total), schema.FormatINR(average))
	default:
		return fmt.Sprintf("Hello! 😊 I found %d transaction(s).\n\n📊 Summary:\n   • Total: %s\n   • Average: %s",
			count, schema.FormatINR(total), schema.FormatINR(average))
	}
}
