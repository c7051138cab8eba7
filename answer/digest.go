package answer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/micronauticals/txnquery/schema"
)

const (
	digestTopSamples    = 10
	digestBottomSamples = 5
	digestBottomCap     = 15
	digestRecentSamples = 15
	digestSampleCap     = 30
	digestMonthCap      = 6
)

type bucket struct {
	count  int
	amount float64
}

// Digest condenses the complete dataset into a bounded text block:
// exact totals, breakdowns by type, mode and month, and a representative
// sample. Every figure covers the full dataset, only the sample is
// partial. A sampleCap of zero uses the default.
func Digest(records []schema.Record, sampleCap int) string {
	total := len(records)
	stats := amountStats(records)

	types := make(map[string]*bucket)
	modes := make(map[string]*bucket)
	months := make(map[string]*bucket)
	for _, r := range records {
		add(types, orUnknown(r.Type), r.Amount)
		add(modes, orUnknown(r.Mode), r.Amount)
		if key := r.MonthKey(); key != "" {
			add(months, key, r.Amount)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 COMPLETE DATASET ANALYSIS (ALL %d TRANSACTIONS):\n", total)
	b.WriteString(strings.Repeat("━", 54) + "\n")
	fmt.Fprintf(&b, "Total Transactions: %d\n", total)
	fmt.Fprintf(&b, "Total Amount: %s\n", schema.FormatINR(stats.Total))
	fmt.Fprintf(&b, "Average Amount: %s\n", schema.FormatINR(stats.Average))
	fmt.Fprintf(&b, "Highest Transaction: %s\n", schema.FormatINR(stats.Max))
	fmt.Fprintf(&b, "Lowest Transaction: %s\n", schema.FormatINR(stats.Min))

	fmt.Fprintf(&b, "\n📈 BREAKDOWN BY TRANSACTION TYPE (ALL %d transactions):\n", total)
	writeBuckets(&b, types, byAmountDesc, -1)

	fmt.Fprintf(&b, "\n💳 BREAKDOWN BY MODE (ALL %d transactions):\n", total)
	writeBuckets(&b, modes, byAmountDesc, -1)

	if len(months) > 0 {
		fmt.Fprintf(&b, "\n📅 MONTHLY BREAKDOWN (ALL %d transactions):\n", total)
		writeBuckets(&b, months, byKeyDesc, digestMonthCap)
	}

	if sampleCap <= 0 {
		sampleCap = digestSampleCap
	}
	samples := sampleRecords(records, sampleCap)
	fmt.Fprintf(&b, "\n📋 REPRESENTATIVE SAMPLE TRANSACTIONS (%d shown from %d total):\n\n", len(samples), total)
	for i, r := range samples {
		fmt.Fprintf(&b, "Sample Transaction %d:\n%s\n\n", i+1, r.Text())
	}
	return b.String()
}

// sampleRecords picks a spread of the dataset: the highest amounts, a
// few of the lowest, and the most recent, deduplicated by ID.
func sampleRecords(records []schema.Record, sampleCap int) []schema.Record {
	byAmount := make([]schema.Record, len(records))
	copy(byAmount, records)
	sort.SliceStable(byAmount, func(i, j int) bool {
		return byAmount[i].Amount > byAmount[j].Amount
	})

	byDate := make([]schema.Record, len(records))
	copy(byDate, records)
	sort.SliceStable(byDate, func(i, j int) bool {
		return byDate[i].Timestamp > byDate[j].Timestamp
	})

	var samples []schema.Record
	seen := make(map[string]bool)
	take := func(r schema.Record, limit int) {
		if limit > 0 && len(samples) >= limit {
			return
		}
		if seen[r.ID] {
			return
		}
		seen[r.ID] = true
		samples = append(samples, r)
	}

	for i := 0; i < len(byAmount) && i < digestTopSamples; i++ {
		take(byAmount[i], 0)
	}
	lowStart := len(byAmount) - digestBottomSamples
	if lowStart < 0 {
		lowStart = 0
	}
	for _, r := range byAmount[lowStart:] {
		take(r, digestBottomCap)
	}
	for i := 0; i < len(byDate) && i < digestRecentSamples; i++ {
		take(byDate[i], sampleCap)
	}
	if len(samples) > sampleCap {
		samples = samples[:sampleCap]
	}
	return samples
}

func amountStats(records []schema.Record) schema.Statistics {
	if len(records) == 0 {
		return schema.Statistics{}
	}
	stats := schema.Statistics{Count: len(records), Max: records[0].Amount, Min: records[0].Amount}
	for _, r := range records {
		stats.Total += r.Amount
		if r.Amount > stats.Max {
			stats.Max = r.Amount
		}
		if r.Amount < stats.Min {
			stats.Min = r.Amount
		}
	}
	stats.Average = stats.Total / float64(stats.Count)
	return stats
}

func add(m map[string]*bucket, key string, amount float64) {
	b, ok := m[key]
	if !ok {
		b = &bucket{}
		m[key] = b
	}
	b.count++
	b.amount += amount
}

func orUnknown(s string) string {
	if s == "" {
		return "UNKNOWN"
	}
	return s
}

type keyedBucket struct {
	key string
	*bucket
}

func byAmountDesc(a, b keyedBucket) bool { return a.amount > b.amount }
func byKeyDesc(a, b keyedBucket) bool    { return a.key > b.key }

func writeBuckets(b *strings.Builder, m map[string]*bucket, less func(a, c keyedBucket) bool, limit int) {
	ordered := make([]keyedBucket, 0, len(m))
	for k, v := range m {
		ordered = append(ordered, keyedBucket{key: k, bucket: v})
	}
	sort.SliceStable(ordered, func(i, j int) bool { return less(ordered[i], ordered[j]) })
	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	for _, kb := range ordered {
		fmt.Fprintf(b, "  • %s: %d transactions, Total: %s\n", kb.key, kb.count, schema.FormatINR(kb.amount))
	}
}
