package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/tweetscrape/internal/model"
)

// HighestResultID returns the largest tweetid stored for the exact query
// string. The bool is false when the query has no stored results.
func (t *Tx) HighestResultID(ctx context.Context, query string) (model.ResultID, bool, error) {
	var highest sql.NullInt64
	err := t.tx.QueryRowContext(ctx, `
		SELECT max(tweetid) FROM tweets WHERE query = ?
	`, query).Scan(&highest)
	if err != nil {
		return 0, false, fmt.Errorf("highest result id for %q: %w", query, err)
	}
	if !highest.Valid {
		return 0, false, nil
	}
	return model.ResultID(highest.Int64), true, nil
}

// InsertResult writes one result record.
// Uses ON CONFLICT DO NOTHING against UNIQUE(query, tweetid): a record that
// is already stored is silently skipped and inserted is false.
func (t *Tx) InsertResult(ctx context.Context, r model.Result) (inserted bool, err error) {
	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO tweets
		(tweetid, tweetdate, user, text, topic, query, fetchdate)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		int64(r.ID),
		formatTime(r.CreatedAt),
		r.User,
		r.Text,
		r.Topic,
		r.Query,
		formatTime(r.FetchedAt),
	)
	if err != nil {
		return false, fmt.Errorf("insert result %s: %w", r.ID, err)
	}
	return affectedOne(result)
}

// ListResults returns the stored results for a query ordered by tweetid.
//
// Returns an empty slice (not nil) if no records exist for the query.
func (t *Tx) ListResults(ctx context.Context, query string) ([]model.Result, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT tweetid, tweetdate, user, text, topic, query, fetchdate
		FROM tweets
		WHERE query = ?
		ORDER BY tweetid ASC
	`, query)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	results := []model.Result{}
	for rows.Next() {
		var (
			r                    model.Result
			id                   int64
			createdAt, fetchedAt string
		)
		if err := rows.Scan(&id, &createdAt, &r.User, &r.Text, &r.Topic, &r.Query, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.ID = model.ResultID(id)
		if r.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if r.FetchedAt, err = parseTime(fetchedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return results, nil
}

// CountResults returns the number of stored results across all queries.
func (t *Tx) CountResults(ctx context.Context) (int64, error) {
	var n int64
	if err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tweets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}
