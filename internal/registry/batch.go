package registry

import (
	"context"
	"fmt"

	"github.com/roach88/tweetscrape/internal/model"
)

// BatchReport is the per-id outcome of a batch command. Ids are reported in
// the order the caller gave them. Failed only ever holds
// *model.NotFoundError values; any other error aborts the batch.
type BatchReport struct {
	// All is set when the selector was "all".
	All bool

	// Count is the number of entries affected.
	Count int64

	Succeeded []int64
	Failed    []*model.NotFoundError

	// Outcomes holds every id of an id-list batch in caller order.
	Outcomes []Outcome
}

// Outcome is the result of a batch for one id.
type Outcome struct {
	ID    int64
	Found bool
}

// Remove deletes the selected entries.
//
// "all" deletes every entry unconditionally. An id list is processed per id:
// missing ids are collected in Failed and do not stop the remaining ids.
func (r *Registry) Remove(ctx context.Context, s Session, sel model.Selector) (BatchReport, error) {
	if sel.All {
		n, err := s.DeleteAllTopics(ctx)
		if err != nil {
			return BatchReport{}, fmt.Errorf("remove all: %w", err)
		}
		r.logger.Debug("removed all topics", "count", n)
		return BatchReport{All: true, Count: n}, nil
	}

	return r.apply(ctx, sel.IDs, "remove", s.DeleteTopic)
}

// Activate marks the given entries eligible for ingestion.
func (r *Registry) Activate(ctx context.Context, s Session, ids []int64) (BatchReport, error) {
	return r.setActive(ctx, s, ids, true)
}

// Deactivate excludes the given entries from ingestion.
func (r *Registry) Deactivate(ctx context.Context, s Session, ids []int64) (BatchReport, error) {
	return r.setActive(ctx, s, ids, false)
}

func (r *Registry) setActive(ctx context.Context, s Session, ids []int64, active bool) (BatchReport, error) {
	op := "deactivate"
	if active {
		op = "activate"
	}
	return r.apply(ctx, ids, op, func(ctx context.Context, id int64) (bool, error) {
		return s.SetTopicActive(ctx, id, active)
	})
}

// apply runs fn for every id in order. fn reports whether the id existed.
func (r *Registry) apply(ctx context.Context, ids []int64, op string, fn func(context.Context, int64) (bool, error)) (BatchReport, error) {
	report := BatchReport{}
	for _, id := range ids {
		found, err := fn(ctx, id)
		if err != nil {
			return report, fmt.Errorf("%s %d: %w", op, id, err)
		}
		report.Outcomes = append(report.Outcomes, Outcome{ID: id, Found: found})
		if !found {
			report.Failed = append(report.Failed, &model.NotFoundError{ID: id})
			continue
		}
		report.Succeeded = append(report.Succeeded, id)
		report.Count++
	}

	r.logger.Debug("batch applied", "op", op, "succeeded", len(report.Succeeded), "failed", len(report.Failed))
	return report, nil
}
