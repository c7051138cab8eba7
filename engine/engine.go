package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/micronauticals/txnquery/answer"
	"github.com/micronauticals/txnquery/cache"
	"github.com/micronauticals/txnquery/common/logger"
	"github.com/micronauticals/txnquery/config"
	"github.com/micronauticals/txnquery/filter"
	"github.com/micronauticals/txnquery/history"
	"github.com/micronauticals/txnquery/ingest"
	"github.com/micronauticals/txnquery/intent"
	"github.com/micronauticals/txnquery/llm"
	"github.com/micronauticals/txnquery/metrics"
	"github.com/micronauticals/txnquery/retriever"
	"github.com/micronauticals/txnquery/schema"
	"github.com/micronauticals/txnquery/store"
)

// ErrNoData is returned when a query arrives before any ingestion.
var ErrNoData = errors.New("no transaction data ingested")

// Engine runs the query pipeline: filter extraction, mode
// classification, per-mode processing and result caching. The cache is
// injected, never ambient; it is the only shared mutable state.
type Engine struct {
	store   *store.Store
	cache   *cache.QueryCache
	index   *retriever.Index
	llm     llm.Provider
	history history.Store
	cfg     config.QueryConfig
}

// Status describes the engine's dataset and cache.
type Status struct {
	HasData       bool      `json:"has_data"`
	Records       int       `json:"records"`
	LastUpdated   time.Time `json:"last_updated"`
	CachedQueries int       `json:"cached_queries"`
}

// New wires an engine. index and provider may be nil; the modes that
// need them then fail explicitly instead of fabricating answers.
func New(st *store.Store, qc *cache.QueryCache, ix *retriever.Index, provider llm.Provider, cfg config.QueryConfig) *Engine {
	return &Engine{store: st, cache: qc, index: ix, llm: provider, cfg: cfg}
}

// WithHistory attaches an interaction history store. Queries carrying a
// user id are then recorded after they are answered.
func (e *Engine) WithHistory(h history.Store) *Engine {
	e.history = h
	return e
}

// Ingest canonicalizes raw transaction JSON, replaces the dataset and
// rebuilds the similarity index. Cached answers about the old dataset
// are dropped.
func (e *Engine) Ingest(ctx context.Context, raw []byte) (int, error) {
	records, err := ingest.Canonicalize(raw)
	if err != nil {
		return 0, fmt.Errorf("ingest: %w", err)
	}
	if e.index != nil {
		if err := e.index.Build(ctx, records); err != nil {
			return 0, err
		}
	}
	e.store.Set(records)
	e.cache.Clear()
	metrics.SetIngestedRecords(len(records))
	logger.Infof("engine: ingested %d records", len(records))
	return len(records), nil
}

// Clear drops the dataset, the similarity index and all cached answers.
func (e *Engine) Clear(ctx context.Context) error {
	if e.index != nil {
		if err := e.index.Store.Reset(ctx); err != nil {
			return fmt.Errorf("clear index: %w", err)
		}
	}
	e.store.Clear()
	e.cache.Clear()
	metrics.SetIngestedRecords(0)
	return nil
}

// Status reports dataset and cache state.
func (e *Engine) Status() Status {
	return Status{
		HasData:       e.store.HasData(),
		Records:       e.store.Len(),
		LastUpdated:   e.store.LastUpdated(),
		CachedQueries: e.cache.Len(),
	}
}

// Query answers a question over the ingested dataset. Page-1 requests
// run the full pipeline and cache the materialized result; page>1
// requests reslice the cached record set without re-running extraction
// or text generation. A missing or expired entry on page>1 is a miss
// and triggers a fresh run, never an error.
func (e *Engine) Query(ctx context.Context, req schema.Request) (*schema.Response, error) {
	if !e.store.HasData() {
		return nil, ErrNoData
	}
	e.normalize(&req)

	records := e.store.Snapshot()
	filters := filter.Extract(req.Prompt)

	queryID := req.QueryID
	if queryID == "" {
		queryID = cache.Key(req.Prompt, filters)
	}

	if req.Page > 1 {
		entry, ok := e.cache.Get(queryID)
		metrics.IncCacheEvent(ok)
		if ok {
			logger.Infof("engine: cache hit for %s (page %d)", queryID, req.Page)
			return e.respondFromCache(queryID, entry, req), nil
		}
		logger.Infof("engine: cache miss for %s (page %d), recomputing", queryID, req.Page)
	}

	mode := intent.Classify(req.Prompt).Mode
	if req.UseFullData != nil {
		if *req.UseFullData {
			mode = schema.ModeSmartFull
		} else {
			mode = schema.ModeVectorSearch
		}
	}
	logger.Infof("engine: query %s mode=%s", queryID, mode)

	resp := &schema.Response{QueryID: queryID, Mode: mode}
	var err error
	switch mode {
	case schema.ModeStatistical:
		err = e.statistical(resp, req, records, filters, queryID)
	case schema.ModeSmartFull:
		err = e.smartFull(ctx, resp, req, records, filters, queryID)
	default:
		err = e.vectorSearch(ctx, resp, req, records, queryID)
	}
	if err != nil {
		return nil, err
	}

	metrics.IncQuery(string(resp.Mode))
	metrics.ObserveMatches(resp.MatchingCount)
	e.recordInteraction(ctx, req, resp)
	return resp, nil
}

// recordInteraction saves an answered query to chat history. History is
// best effort and never fails the query.
func (e *Engine) recordInteraction(ctx context.Context, req schema.Request, resp *schema.Response) {
	if e.history == nil || req.UserID == "" {
		return
	}
	err := e.history.Save(ctx, req.UserID, history.Interaction{
		QueryID:        resp.QueryID,
		Prompt:         req.Prompt,
		Answer:         resp.Answer,
		Mode:           resp.Mode,
		MatchingCount:  resp.MatchingCount,
		FiltersApplied: resp.FiltersApplied,
	})
	if err != nil {
		logger.Warnf("engine: saving chat history for %s failed: %v", req.UserID, err)
	}
}

// statistical answers from deterministic filtering alone. The text
// generator is never called.
func (e *Engine) statistical(resp *schema.Response, req schema.Request, records []schema.Record, filters schema.FilterSet, queryID string) error {
	filtered, descriptions := filter.Apply(records, filters)
	stats := filter.Reduce(filtered)

	resp.Answer = answer.StatisticalAnswer(answer.DetectRegister(req.Prompt), stats, descriptions)
	resp.Statistics = &stats
	resp.FiltersApplied = descriptions
	resp.MatchingCount = len(filtered)

	e.cache.Put(queryID, &cache.Entry{
		Answer:       resp.Answer,
		Mode:         resp.Mode,
		Records:      filtered,
		Descriptions: descriptions,
		Statistics:   &stats,
	})
	return nil
}

// smartFull filters exhaustively and narrates the result. An empty
// result gets the templated no-match answer without a generator call.
func (e *Engine) smartFull(ctx context.Context, resp *schema.Response, req schema.Request, records []schema.Record, filters schema.FilterSet, queryID string) error {
	filtered, descriptions := filter.Apply(records, filters)
	reg := answer.DetectRegister(req.Prompt)

	var text string
	switch {
	case len(filtered) == 0:
		text = answer.NoMatchAnswer(reg)
	case e.llm != nil:
		stats := filter.Reduce(filtered)
		prompt := answer.NarrationPrompt(req.Prompt, filtered, descriptions, stats, e.cfg.SampleLimit)
		prompt = answer.TrimToBudget(prompt, e.cfg.PromptTokenBudget)
		start := time.Now()
		generated, err := e.llm.GenerateCompletion(ctx, prompt)
		metrics.ObserveCollaborator("generator", start)
		if err != nil {
			return fmt.Errorf("narrate filtered set: %w", err)
		}
		text = generated
	default:
		stats := filter.Reduce(filtered)
		text = answer.FallbackSummary(reg, stats.Count, stats.Total, stats.Average)
	}

	resp.Answer = text
	resp.MatchingCount = len(filtered)
	resp.FiltersApplied = descriptions

	e.cache.Put(queryID, &cache.Entry{
		Answer:       text,
		Mode:         resp.Mode,
		Records:      filtered,
		Descriptions: descriptions,
	})

	if req.ShowAll && len(filtered) > 0 {
		resp.Transactions, resp.Pagination = paginate(filtered, req.Page, req.PageSize)
	}
	return nil
}

// vectorSearch routes counting and analytical questions to a
// full-dataset digest, everything else to top-k retrieval. Plain
// retrieval answers are question-specific one-offs and are not cached.
func (e *Engine) vectorSearch(ctx context.Context, resp *schema.Response, req schema.Request, records []schema.Record, queryID string) error {
	if e.llm == nil {
		return errors.New("text generator not configured")
	}

	if intent.IsCounting(req.Prompt) || intent.IsAnalytical(req.Prompt) {
		digest := answer.Digest(records, e.cfg.DigestSampleLimit)
		frame := answer.AnalyticalPrompt(req.Prompt, "", len(records))
		digest = answer.TrimContext(digest, frame, e.cfg.PromptTokenBudget)
		prompt := answer.AnalyticalPrompt(req.Prompt, digest, len(records))
		start := time.Now()
		text, err := e.llm.GenerateCompletion(ctx, prompt)
		metrics.ObserveCollaborator("generator", start)
		if err != nil {
			return fmt.Errorf("analyze dataset: %w", err)
		}
		resp.Answer = text
		resp.MatchingCount = len(records)

		e.cache.Put(queryID, &cache.Entry{Answer: text, Mode: resp.Mode})
		return nil
	}

	if e.index == nil {
		return errors.New("similarity index not configured")
	}

	k := e.cfg.TopK
	if k <= 0 {
		k = 50
	}
	if k > len(records) {
		k = len(records)
	}
	searchStart := time.Now()
	hits, err := e.index.Search(ctx, req.Prompt, k)
	metrics.ObserveCollaborator("index", searchStart)
	if err != nil {
		return fmt.Errorf("similarity search: %w", err)
	}

	block := answer.ContextBlock(hits)
	block = answer.TrimContext(block, answer.ContextPrompt(req.Prompt, ""), e.cfg.PromptTokenBudget)
	prompt := answer.ContextPrompt(req.Prompt, block)
	start := time.Now()
	text, err := e.llm.GenerateCompletion(ctx, prompt)
	metrics.ObserveCollaborator("generator", start)
	if err != nil {
		return fmt.Errorf("answer from context: %w", err)
	}
	resp.Answer = text
	resp.MatchingCount = k
	return nil
}

// respondFromCache rebuilds a response from a cached entry, reslicing
// the materialized record set for the requested page.
func (e *Engine) respondFromCache(queryID string, entry *cache.Entry, req schema.Request) *schema.Response {
	resp := &schema.Response{
		QueryID:        queryID,
		Mode:           entry.Mode,
		Answer:         entry.Answer,
		MatchingCount:  len(entry.Records),
		FiltersApplied: entry.Descriptions,
		Statistics:     entry.Statistics,
	}
	if req.ShowAll && len(entry.Records) > 0 {
		resp.Transactions, resp.Pagination = paginate(entry.Records, req.Page, req.PageSize)
	}
	return resp
}

func (e *Engine) normalize(req *schema.Request) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = e.cfg.DefaultPageSize
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if e.cfg.MaxPageSize > 0 && req.PageSize > e.cfg.MaxPageSize {
		req.PageSize = e.cfg.MaxPageSize
	}
}

// paginate sorts by amount descending and cuts the requested window.
// A page past the end yields an empty window, not an error.
func paginate(records []schema.Record, page, pageSize int) ([]schema.RecordView, *schema.Pagination) {
	sorted := make([]schema.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	views := make([]schema.RecordView, 0, end-start)
	for _, r := range sorted[start:end] {
		views = append(views, r.View())
	}

	totalPages := (len(records) + pageSize - 1) / pageSize
	return views, &schema.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(records),
		TotalPages: totalPages,
		HasNext:    start+pageSize < len(records),
		HasPrev:    page > 1,
	}
}
