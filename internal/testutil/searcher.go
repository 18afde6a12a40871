package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/roach88/tweetscrape/internal/model"
)

// SearchCall records one call made to a StubSearcher.
type SearchCall struct {
	Query    string
	SinceID  model.ResultID
	PageSize int
}

// StubSearcher is a scripted remote search capability.
//
// Results are configured per query string. By default the stub ignores
// sinceID and returns the whole script, like a remote whose filter cannot be
// trusted; set HonorSinceID to filter.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StubSearcher struct {
	// HonorSinceID drops scripted results with ids <= sinceID.
	HonorSinceID bool

	mu      sync.Mutex
	results map[string][]model.Post
	errs    map[string]error
	calls   []SearchCall
}

// NewStubSearcher creates a stub with no scripted results.
func NewStubSearcher() *StubSearcher {
	return &StubSearcher{
		results: make(map[string][]model.Post),
		errs:    make(map[string]error),
	}
}

// SetResults scripts the results returned for query, replacing earlier ones.
func (s *StubSearcher) SetResults(query string, posts ...model.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[query] = append([]model.Post(nil), posts...)
}

// FailOn makes every search for query return err. A nil err clears it.
func (s *StubSearcher) FailOn(query string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.errs, query)
		return
	}
	s.errs[query] = err
}

// Search implements the remote search capability.
func (s *StubSearcher) Search(ctx context.Context, query string, sinceID model.ResultID, pageSize int) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, SearchCall{Query: query, SinceID: sinceID, PageSize: pageSize})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.errs[query]; err != nil {
		return nil, err
	}

	var out []model.Post
	for _, p := range s.results[query] {
		if s.HonorSinceID && sinceID > 0 && p.ID <= sinceID {
			continue
		}
		if pageSize > 0 && len(out) == pageSize {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

// Calls returns a copy of the calls made so far, in order.
func (s *StubSearcher) Calls() []SearchCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SearchCall(nil), s.calls...)
}

// PostAt builds a deterministic post for id.
func PostAt(id model.ResultID) model.Post {
	return model.Post{
		ID:        id,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Second),
		User:      fmt.Sprintf("user%d", id),
		Text:      fmt.Sprintf("post %d", id),
	}
}

// Posts builds deterministic posts for ids, in the order given.
func Posts(ids ...model.ResultID) []model.Post {
	out := make([]model.Post, 0, len(ids))
	for _, id := range ids {
		out = append(out, PostAt(id))
	}
	return out
}
