package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micronauticals/txnquery/schema"
)

func TestExtractCombinedQuestion(t *testing.T) {
	f := Extract("show me all transactions above 5000 in March 2024 by UPI")

	require.NotNil(t, f.AmountAbove)
	assert.Equal(t, 5000.0, *f.AmountAbove)
	require.NotNil(t, f.Date)
	assert.Equal(t, 3, f.Date.Month)
	assert.Equal(t, 2024, f.Date.Year)
	assert.Equal(t, "UPI", f.Mode)
	assert.Nil(t, f.AmountRange)
	assert.Nil(t, f.AmountBelow)
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		question string
		want     *schema.DateFilter
	}{
		{"spending in march 2024", &schema.DateFilter{Month: 3, Year: 2024}},
		{"spending in mar 2024", &schema.DateFilter{Month: 3, Year: 2024}},
		{"transactions in december", &schema.DateFilter{Month: 12}},
		{"everything from 2023", &schema.DateFilter{Year: 2023}},
		{"मार्च 2024 के लेनदेन", &schema.DateFilter{Month: 3, Year: 2024}},
		{"जनवरी में कितना खर्च हुआ", &schema.DateFilter{Month: 1}},
		{"show my balance", nil},
	}
	for _, tt := range tests {
		got := Extract(tt.question).Date
		assert.Equal(t, tt.want, got, "question: %s", tt.question)
	}
}

func TestExtractAmountRange(t *testing.T) {
	f := Extract("transactions between 10000 and 2000")
	require.NotNil(t, f.AmountRange)
	assert.Equal(t, 2000.0, f.AmountRange.Min, "bounds are sorted")
	assert.Equal(t, 10000.0, f.AmountRange.Max)
	assert.Nil(t, f.AmountAbove, "range wins over other amount filters")
}

func TestExtractAmountShorthand(t *testing.T) {
	f := Extract("payments above 5k")
	require.NotNil(t, f.AmountAbove)
	assert.Equal(t, 5000.0, *f.AmountAbove)

	f = Extract("anything below 1.5l")
	require.NotNil(t, f.AmountBelow)
	assert.Equal(t, 150000.0, *f.AmountBelow)

	f = Extract("5000 se zyada ke transactions")
	require.NotNil(t, f.AmountAbove)
	assert.Equal(t, 5000.0, *f.AmountAbove)
}

func TestExtractAmountIgnoresYears(t *testing.T) {
	f := Extract("transactions above 2024")
	assert.Nil(t, f.AmountAbove, "year-shaped tokens never become amounts")

	f = Extract("spending over 3000 in 2024")
	require.NotNil(t, f.AmountAbove)
	assert.Equal(t, 3000.0, *f.AmountAbove)
}

func TestExtractAmountCommas(t *testing.T) {
	f := Extract("more than 1,50,000 spent")
	require.NotNil(t, f.AmountAbove)
	assert.Equal(t, 150000.0, *f.AmountAbove)
}

func TestExtractMode(t *testing.T) {
	assert.Equal(t, "UPI", Extract("all upi payments").Mode)
	assert.Equal(t, "NEFT", Extract("neft transfers please").Mode)
	assert.Equal(t, "DEBIT CARD", Extract("debit card swipes").Mode)
	assert.Empty(t, Extract("all payments").Mode)
}

func TestExtractType(t *testing.T) {
	assert.Equal(t, "CREDIT", Extract("money credited to my account").Type)
	assert.Equal(t, "DEBIT", Extract("what got debited").Type)
	assert.Equal(t, "CREDIT", Extract("क्रेडिट लेनदेन दिखाओ").Type)
	assert.Empty(t, Extract("show everything").Type)
}

func TestExtractAccount(t *testing.T) {
	f := Extract("transactions for account 9f8b2c1a-1234-4abc-9def-0123456789ab")
	assert.Equal(t, "9f8b2c1a-1234-4abc-9def-0123456789ab", f.AccountID)

	f = Extract("acc no: ACC-991 summary")
	assert.Equal(t, "acc-991", f.AccountID)
}

func TestExtractPerson(t *testing.T) {
	f := Extract("payments to Rahul Sharma last month")
	assert.Equal(t, "Rahul Sharma", f.PersonName)
	assert.True(t, f.StrictName, "multi-word capitalized names are strict")

	f = Extract("payments from Priya")
	assert.Equal(t, "Priya", f.PersonName)
	assert.False(t, f.StrictName)

	f = Extract("payments from someone")
	assert.Empty(t, f.PersonName)
}

func TestExtractEmptyQuestion(t *testing.T) {
	f := Extract("")
	assert.True(t, f.IsZero())
}
