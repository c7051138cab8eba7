package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/micronauticals/txnquery/schema"
)

func TestClassifyCascade(t *testing.T) {
	tests := []struct {
		question string
		mode     schema.Mode
		reason   string
	}{
		{"how many transactions did I make", schema.ModeVectorSearch, "counting"},
		{"transactions kitne hai", schema.ModeVectorSearch, "counting"},
		{"कितने transaction हुए", schema.ModeVectorSearch, "counting"},
		{"number of transactions in march", schema.ModeVectorSearch, "counting"},
		{"list all transactions for account 9f8b2c1a-1234-4abc-9def-0123456789ab", schema.ModeSmartFull, "account listing"},
		{"खाता के saari transactions dikhao", schema.ModeSmartFull, "account listing"},
		{"total amount spent on food", schema.ModeStatistical, "pure statistics"},
		{"average amount per month", schema.ModeStatistical, "pure statistics"},
		{"show me payments above 5000", schema.ModeSmartFull, "full scan"},
		{"largest transaction this year", schema.ModeSmartFull, "full scan"},
		{"saari upi payments", schema.ModeSmartFull, "full scan"},
		{"transactions in 2024", schema.ModeSmartFull, "time period"},
		{"march transactions", schema.ModeSmartFull, "time period"},
		{"summarize my spending", schema.ModeVectorSearch, "analytical"},
		{"why did my balance drop", schema.ModeVectorSearch, "analytical"},
		{"kya hua mere paise ka", schema.ModeVectorSearch, "analytical"},
		{"rent payment to landlord", schema.ModeVectorSearch, "default"},
	}
	for _, tt := range tests {
		d := Classify(tt.question)
		assert.Equal(t, tt.mode, d.Mode, "question: %s", tt.question)
		assert.Equal(t, tt.reason, d.Reason, "question: %s", tt.question)
	}
}

func TestCountingBeatsAnalytical(t *testing.T) {
	d := Classify("explain how many transactions I made")
	assert.Equal(t, schema.ModeVectorSearch, d.Mode)
	assert.Equal(t, "counting", d.Reason, "counting outranks the analytical rule")
}

func TestStatisticalExclusions(t *testing.T) {
	d := Classify("sum of transaction number 42 and 43")
	assert.NotEqual(t, schema.ModeStatistical, d.Mode, "number lookups are not statistics")
}

func TestIsCounting(t *testing.T) {
	assert.True(t, IsCounting("how many transactions last month"))
	assert.True(t, IsCounting("count of all my transactions"))
	assert.False(t, IsCounting("show my biggest transaction"))
}

func TestIsAnalytical(t *testing.T) {
	assert.True(t, IsAnalytical("give me an overview of spending patterns"))
	assert.False(t, IsAnalytical("upi 5000"))
}
