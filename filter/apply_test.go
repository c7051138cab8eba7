package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micronauticals/txnquery/schema"
)

func sampleRecords() []schema.Record {
	return []schema.Record{
		{ID: "t-1", AccountID: "acc-1", Timestamp: "2024-03-05T10:00:00Z", Amount: 7500, Mode: "UPI", Type: "DEBIT", Narration: "Paid to Rahul Sharma"},
		{ID: "t-2", AccountID: "acc-1", Timestamp: "2024-03-12T09:30:00Z", Amount: 5000, Mode: "NEFT", Type: "CREDIT", Narration: "Salary credit"},
		{ID: "t-3", AccountID: "acc-2", Timestamp: "2024-04-01T08:00:00Z", Amount: 300, Mode: "UPI", Type: "DEBIT", Narration: "Coffee with Rahul"},
		{ID: "t-4", AccountID: "acc-2", Timestamp: "2023-03-20T14:00:00Z", Amount: 12000, Mode: "UPI", Type: "DEBIT", Narration: "Rent transfer"},
		{ID: "t-5", AccountID: "acc-1", Timestamp: "not-a-date", Amount: 9000, Mode: "UPI", Type: "DEBIT", Narration: "Misc"},
	}
}

func ids(records []schema.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestApplyCombined(t *testing.T) {
	above := 5000.0
	f := schema.FilterSet{
		AmountAbove: &above,
		Date:        &schema.DateFilter{Month: 3, Year: 2024},
		Mode:        "UPI",
	}

	filtered, descriptions := Apply(sampleRecords(), f)

	assert.Equal(t, []string{"t-1"}, ids(filtered))
	assert.Equal(t, []string{"Date: Mar 2024", "Mode: UPI", "Amount above: ₹5,000.00"}, descriptions)
}

func TestApplyStrictBoundaries(t *testing.T) {
	records := []schema.Record{
		{ID: "lo", Amount: 4999.99},
		{ID: "eq", Amount: 5000},
		{ID: "hi", Amount: 5000.01},
	}

	above := 5000.0
	filtered, _ := Apply(records, schema.FilterSet{AmountAbove: &above})
	assert.Equal(t, []string{"hi"}, ids(filtered), "above excludes the boundary")

	below := 5000.0
	filtered, _ = Apply(records, schema.FilterSet{AmountBelow: &below})
	assert.Equal(t, []string{"lo"}, ids(filtered), "below excludes the boundary")

	filtered, _ = Apply(records, schema.FilterSet{AmountRange: &schema.AmountRange{Min: 5000, Max: 5000.01}})
	assert.Equal(t, []string{"eq", "hi"}, ids(filtered), "range includes both boundaries")
}

func TestApplyDateVariants(t *testing.T) {
	filtered, descriptions := Apply(sampleRecords(), schema.FilterSet{Date: &schema.DateFilter{Year: 2024}})
	assert.Equal(t, []string{"t-1", "t-2", "t-3"}, ids(filtered))
	assert.Equal(t, []string{"Year: 2024"}, descriptions)

	filtered, descriptions = Apply(sampleRecords(), schema.FilterSet{Date: &schema.DateFilter{Month: 3}})
	assert.Equal(t, []string{"t-1", "t-2", "t-4"}, ids(filtered), "month-only spans years")
	assert.Empty(t, descriptions, "month-only filters carry no description")
}

func TestApplyDropsUnparsableDates(t *testing.T) {
	filtered, _ := Apply(sampleRecords(), schema.FilterSet{Date: &schema.DateFilter{Year: 2024}})
	assert.NotContains(t, ids(filtered), "t-5")
}

func TestApplyPersonMatching(t *testing.T) {
	filtered, descriptions := Apply(sampleRecords(), schema.FilterSet{PersonName: "Rahul Sharma", StrictName: true})
	assert.Equal(t, []string{"t-1"}, ids(filtered), "strict match requires the full name sequence")
	assert.Equal(t, []string{"EXACT name: 'Rahul Sharma'"}, descriptions)

	filtered, descriptions = Apply(sampleRecords(), schema.FilterSet{PersonName: "rahul"})
	assert.Equal(t, []string{"t-1", "t-3"}, ids(filtered), "loose match is case-insensitive containment")
	assert.Equal(t, []string{"Person: 'rahul'"}, descriptions)
}

func TestApplyAccountAndType(t *testing.T) {
	filtered, _ := Apply(sampleRecords(), schema.FilterSet{AccountID: "ACC-2"})
	assert.Equal(t, []string{"t-3", "t-4"}, ids(filtered), "account match ignores case")

	filtered, descriptions := Apply(sampleRecords(), schema.FilterSet{Type: "CREDIT"})
	assert.Equal(t, []string{"t-2"}, ids(filtered))
	assert.Equal(t, []string{"Type: CREDIT"}, descriptions)
}

func TestApplyIdempotent(t *testing.T) {
	above := 1000.0
	f := schema.FilterSet{AmountAbove: &above, Mode: "UPI"}

	once, _ := Apply(sampleRecords(), f)
	twice, _ := Apply(once, f)
	assert.Equal(t, once, twice, "a filtered set is a fixed point of its own filter")
}

func TestApplyEmptyFilterPassthrough(t *testing.T) {
	records := sampleRecords()
	filtered, descriptions := Apply(records, schema.FilterSet{})
	assert.Equal(t, ids(records), ids(filtered))
	assert.Empty(t, descriptions)
}

func TestApplyEmptyInput(t *testing.T) {
	above := 100.0
	filtered, descriptions := Apply(nil, schema.FilterSet{AmountAbove: &above, Mode: "UPI"})
	require.Empty(t, filtered)
	assert.Len(t, descriptions, 2, "descriptions reflect the filter, not the result")
}

func TestApplyRangeDescription(t *testing.T) {
	_, descriptions := Apply(sampleRecords(), schema.FilterSet{AmountRange: &schema.AmountRange{Min: 2000, Max: 10000}})
	assert.Equal(t, []string{"Amount: ₹2,000.00 - ₹10,000.00"}, descriptions)
}
