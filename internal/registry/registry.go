// Package registry manages the set of tracked topic/query pairs.
//
// The registry never holds a connection of its own: every operation runs on
// the Session passed in, so a command's reads and writes share one
// transaction.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/tweetscrape/internal/model"
)

// Session is the storage surface the registry needs. *store.Tx implements it.
type Session interface {
	ListTopics(ctx context.Context) ([]model.Topic, error)
	InsertTopic(ctx context.Context, topic, query string) (int64, error)
	DeleteTopic(ctx context.Context, id int64) (bool, error)
	DeleteAllTopics(ctx context.Context) (int64, error)
	SetTopicActive(ctx context.Context, id int64, active bool) (bool, error)
}

// Registry implements the topic management commands.
type Registry struct {
	logger *slog.Logger
}

// New creates a Registry. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// List returns every entry in insertion order.
func (r *Registry) List(ctx context.Context, s Session) ([]model.Topic, error) {
	topics, err := s.ListTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// Add tracks a new (topic, query) pair and returns its id.
//
// Both strings are NFC-normalised so that canonically equivalent input
// compares equal. An existing identical pair yields *model.DuplicateError
// and nothing is written.
func (r *Registry) Add(ctx context.Context, s Session, topic, query string) (int64, error) {
	topic = norm.NFC.String(topic)
	query = norm.NFC.String(query)
	if strings.TrimSpace(topic) == "" {
		return 0, model.NewUsageError("topic must not be empty")
	}
	if strings.TrimSpace(query) == "" {
		return 0, model.NewUsageError("query must not be empty")
	}

	topics, err := s.ListTopics(ctx)
	if err != nil {
		return 0, fmt.Errorf("add topic: %w", err)
	}
	for _, t := range topics {
		if t.Topic == topic && t.Query == query {
			return 0, &model.DuplicateError{ExistingID: t.ID, Topic: topic, Query: query}
		}
	}

	// The store's UNIQUE(topic, query) catches a pair committed by another
	// process after the scan above.
	id, err := s.InsertTopic(ctx, topic, query)
	if err != nil {
		if model.IsDuplicateError(err) {
			return 0, err
		}
		return 0, fmt.Errorf("add topic: %w", err)
	}

	r.logger.Debug("topic added", "id", id, "topic", topic, "query", query)
	return id, nil
}
