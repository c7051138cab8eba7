package schema

// Mode is the answering strategy chosen for a query.
type Mode string

const (
	ModeStatistical  Mode = "STATISTICAL"
	ModeSmartFull    Mode = "SMART_FULL"
	ModeVectorSearch Mode = "VECTOR_SEARCH"
)

// Record is a single financial transaction, canonicalized at ingestion.
// Records are immutable once ingested and shared read-only.
type Record struct {
	ID        string  `json:"txnId"`
	AccountID string  `json:"accountId"`
	Timestamp string  `json:"createdAt"` // ISO date string, date in the first 10 bytes
	Amount    float64 `json:"amount"`
	Balance   float64 `json:"currentBalance"`
	Mode      string  `json:"mode"`
	Narration string  `json:"narration"`
	Reference string  `json:"reference"`
	Type      string  `json:"type"` // CREDIT / DEBIT tag
}

// DateFilter narrows records to a month and/or year. Zero means unset.
type DateFilter struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
}

// AmountRange is an inclusive amount interval with Min <= Max.
type AmountRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterSet is the structured predicate extracted from a free-text
// question. At most one of the three amount fields is honored when the
// set is applied: range, then above, then below. Immutable after
// extraction.
type FilterSet struct {
	AmountAbove *float64     `json:"amount_above,omitempty"` // exclusive lower bound
	AmountBelow *float64     `json:"amount_below,omitempty"` // exclusive upper bound
	AmountRange *AmountRange `json:"amount_range,omitempty"`
	Date        *DateFilter  `json:"date_filter,omitempty"`
	Mode        string       `json:"mode,omitempty"`
	Type        string       `json:"type,omitempty"`
	AccountID   string       `json:"account_id,omitempty"`
	PersonName  string       `json:"person_name,omitempty"`
	StrictName  bool         `json:"strict_name_match,omitempty"`
}

// IsZero reports whether no filter field is set.
func (f FilterSet) IsZero() bool {
	return f.AmountAbove == nil && f.AmountBelow == nil && f.AmountRange == nil &&
		f.Date == nil && f.Mode == "" && f.Type == "" && f.AccountID == "" &&
		f.PersonName == ""
}

// Statistics summarizes the amount field of a record set.
type Statistics struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
}

// Request is the transport-agnostic query contract.
type Request struct {
	Prompt      string `json:"prompt"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
	ShowAll     bool   `json:"show_all"`
	UseFullData *bool  `json:"use_full_data,omitempty"` // forces SMART_FULL (true) or VECTOR_SEARCH (false)
	QueryID     string `json:"query_id,omitempty"`      // reuse an existing identity for pagination
	UserID      string `json:"user_id,omitempty"`       // attributes the interaction in chat history
}

// RecordView is the API-facing projection of a record.
type RecordView struct {
	TransactionID string  `json:"transaction_id"`
	AccountNumber string  `json:"account_number"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"type"`
	Mode          string  `json:"mode"`
	BalanceAfter  float64 `json:"balance_after"`
	Narration     string  `json:"narration"`
	Reference     string  `json:"reference"`
}

// Pagination describes a slice of the sorted matching record set.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Response is the transport-agnostic answer contract.
type Response struct {
	QueryID        string       `json:"query_id"`
	Mode           Mode         `json:"mode"`
	Answer         string       `json:"answer"`
	MatchingCount  int          `json:"matching_transactions_count"`
	FiltersApplied []string     `json:"filters_applied,omitempty"`
	Transactions   []RecordView `json:"transactions,omitempty"`
	Pagination     *Pagination  `json:"pagination,omitempty"`
	Statistics     *Statistics  `json:"statistics,omitempty"`
}

// View projects a record for API responses.
func (r Record) View() RecordView {
	return RecordView{
		TransactionID: orNA(r.ID),
		AccountNumber: orNA(r.AccountID),
		Date:          orNA(r.Timestamp),
		Amount:        r.Amount,
		Type:          orNA(r.Type),
		Mode:          orNA(r.Mode),
		BalanceAfter:  r.Balance,
		Narration:     orNA(r.Narration),
		Reference:     orNA(r.Reference),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
