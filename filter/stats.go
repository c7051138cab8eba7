package filter

import "github.com/micronauticals/txnquery/schema"

// Stats applies the filter set and reduces the amounts of the result to
// count/total/average/max/min. An empty result yields all zeros.
func Stats(records []schema.Record, f schema.FilterSet) schema.Statistics {
	filtered, _ := Apply(records, f)
	return Reduce(filtered)
}

// Reduce computes amount statistics over an already-filtered record set.
func Reduce(records []schema.Record) schema.Statistics {
	if len(records) == 0 {
		return schema.Statistics{}
	}
	stats := schema.Statistics{
		Count: len(records),
		Max:   records[0].Amount,
		Min:   records[0].Amount,
	}
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
