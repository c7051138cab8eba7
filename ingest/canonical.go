package ingest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/micronauticals/txnquery/schema"
)

// Canonicalize parses a JSON array of loosely-typed transaction objects
// into typed records. Upstream producers disagree on field names
// (amount vs. nothing, currentBalance vs. balance, mode vs. txnMode, ...),
// so every alias is resolved exactly once here; the rest of the engine
// only ever sees schema.Record.
//
// Missing fields default to zero values. Records without an id get a
// generated one so deduplication by id stays possible downstream.
func Canonicalize(raw []byte) ([]schema.Record, error) {
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("canonicalize: expected a JSON array of transaction objects")
	}

	items := parsed.Array()
	records := make([]schema.Record, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		records = append(records, canonicalizeOne(item))
	}
	return records, nil
}

func canonicalizeOne(item gjson.Result) schema.Record {
	rec := schema.Record{
		ID:        firstString(item, "txnId", "id", "transaction_id"),
		AccountID: firstString(item, "accountId", "accountNumber", "account_number"),
		Timestamp: firstString(item, "createdAt", "date", "timestamp"),
		Amount:    firstFloat(item, "amount"),
		Balance:   firstFloat(item, "currentBalance", "balance", "balance_after"),
		Mode:      firstString(item, "mode", "txnMode"),
		Narration: firstString(item, "narration"),
		Reference: firstString(item, "reference", "txnRef"),
		Type:      typeTag(item),
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	return rec
}

// typeTag resolves the transaction type, stripping the upstream
// partition-key prefix (pk_GSI_1 = "TYPE#CREDIT").
func typeTag(item gjson.Result) string {
	if v := item.Get("pk_GSI_1"); v.Exists() {
		return strings.TrimPrefix(v.String(), "TYPE#")
	}
	return strings.ToUpper(firstString(item, "type", "txnType"))
}

func firstString(item gjson.Result, keys ...string) string {
	for _, key := range keys {
		if v := item.Get(key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// firstFloat tolerates numbers arriving as JSON strings; unparsable
// values degrade to zero.
func firstFloat(item gjson.Result, keys ...string) float64 {
	for _, key := range keys {
		if v := item.Get(key); v.Exists() {
			return v.Float()
		}
	}
	return 0
}
