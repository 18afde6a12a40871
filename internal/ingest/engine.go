package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/roach88/tweetscrape/internal/model"
)

// DefaultPageSize is the number of results requested per topic per run.
const DefaultPageSize = 100

// Searcher is the remote search capability.
//
// Search returns at most pageSize results for query, most recent first,
// restricted to ids strictly greater than sinceID. A zero sinceID means no
// lower bound.
type Searcher interface {
	Search(ctx context.Context, query string, sinceID model.ResultID, pageSize int) ([]model.Post, error)
}

// Session is the storage surface a run needs. *store.Tx implements it.
type Session interface {
	WatermarkReader
	ActiveTopics(ctx context.Context) ([]model.Topic, error)
	InsertResult(ctx context.Context, r model.Result) (bool, error)
}

// Summary describes a completed run.
type Summary struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Topics is the number of active topics searched.
	Topics int `json:"topics" yaml:"topics"`

	// Fetched counts every result returned by the remote search.
	Fetched int `json:"fetched" yaml:"fetched"`

	// Inserted counts results written to the store.
	Inserted int `json:"inserted" yaml:"inserted"`

	// Skipped counts results at or below the watermark, or already stored.
	Skipped int `json:"skipped" yaml:"skipped"`
}

// Engine performs ingestion runs.
type Engine struct {
	searcher Searcher
	pageSize int
	logger   *slog.Logger
	clock    Clock
	runIDs   RunIDGenerator
}

// New creates an Engine. A pageSize <= 0 uses DefaultPageSize; a nil logger
// falls back to slog.Default().
func New(searcher Searcher, pageSize int, logger *slog.Logger) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		searcher: searcher,
		pageSize: pageSize,
		logger:   logger,
		clock:    SystemClock{},
		runIDs:   UUIDv7Generator{},
	}
}

// WithClock overrides the run start clock (for testing).
func (e *Engine) WithClock(c Clock) *Engine {
	e.clock = c
	return e
}

// WithRunIDs overrides the run id generator (for testing).
func (e *Engine) WithRunIDs(g RunIDGenerator) *Engine {
	e.runIDs = g
	return e
}

// Run performs one ingestion run over the active topics of the session.
//
// Any search or storage failure stops the run immediately and is returned
// as *model.RemoteError or *model.StorageError. The partial Summary is
// returned alongside the error; the caller must not commit the session.
func (e *Engine) Run(ctx context.Context, s Session) (Summary, error) {
	summary := Summary{
		RunID:     e.runIDs.Generate(),
		StartedAt: e.clock.Now(),
	}
	logger := e.logger.With("run_id", summary.RunID)

	topics, err := s.ActiveTopics(ctx)
	if err != nil {
		return summary, &model.StorageError{Op: "load active topics", Err: err}
	}
	logger.Info("run started", "active_topics", len(topics))

	for _, t := range topics {
		if err := e.runTopic(ctx, s, t, &summary, logger); err != nil {
			logger.Error("run aborted", "topic", t.Topic, "query", t.Query, "error", err)
			return summary, err
		}
		summary.Topics++
	}

	logger.Info("run finished",
		"topics", summary.Topics,
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

func (e *Engine) runTopic(ctx context.Context, s Session, t model.Topic, summary *Summary, logger *slog.Logger) error {
	watermark, seen, err := HighestSeen(ctx, s, t.Query)
	if err != nil {
		return err
	}

	var sinceID model.ResultID
	if seen {
		sinceID = watermark
	}
	logger.Debug("searching", "topic", t.Topic, "query", t.Query, "since_id", sinceID, "page_size", e.pageSize)

	posts, err := e.searcher.Search(ctx, t.Query, sinceID, e.pageSize)
	if err != nil {
		return &model.RemoteError{Query: t.Query, Err: err}
	}
	summary.Fetched += len(posts)

	for _, p := range posts {
		// The remote filter is not trusted: anything at or below the
		// watermark has been stored by an earlier run.
		if seen && p.ID <= watermark {
			summary.Skipped++
			continue
		}

		inserted, err := s.InsertResult(ctx, model.Result{
			ID:        p.ID,
			CreatedAt: p.CreatedAt,
			User:      p.User,
			Text:      p.Text,
			Topic:     t.Topic,
			Query:     t.Query,
			FetchedAt: summary.StartedAt,
		})
		if err != nil {
			return &model.StorageError{Op: "insert result", Err: err}
		}
		if !inserted {
			summary.Skipped++
			continue
		}
		summary.Inserted++
		logger.Info("result inserted", "query", t.Query, "result_id", p.ID)
	}

	return nil
}
