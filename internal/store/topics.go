package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/tweetscrape/internal/model"
)

// ListTopics returns every topic in insertion order.
//
// Returns an empty slice (not nil) if the registry is empty.
func (t *Tx) ListTopics(ctx context.Context) ([]model.Topic, error) {
	return t.queryTopics(ctx, `
		SELECT id, topic, query, isactive
		FROM topics
		ORDER BY id ASC
	`)
}

// ActiveTopics returns the topics eligible for ingestion, in insertion order.
func (t *Tx) ActiveTopics(ctx context.Context) ([]model.Topic, error) {
	return t.queryTopics(ctx, `
		SELECT id, topic, query, isactive
		FROM topics
		WHERE isactive = 1
		ORDER BY id ASC
	`)
}

func (t *Tx) queryTopics(ctx context.Context, query string, args ...any) ([]model.Topic, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	defer rows.Close()

	topics := []model.Topic{}
	for rows.Next() {
		var tp model.Topic
		if err := rows.Scan(&tp.ID, &tp.Topic, &tp.Query, &tp.Active); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, tp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}

	return topics, nil
}

// InsertTopic inserts a new active topic and returns its id.
//
// A UNIQUE(topic, query) violation is returned as *model.DuplicateError
// carrying the id of the row that already holds the pair.
func (t *Tx) InsertTopic(ctx context.Context, topic, query string) (int64, error) {
	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO topics (topic, query, isactive)
		VALUES (?, ?, 1)
	`, topic, query)
	if err != nil {
		if isUniqueViolation(err) {
			existing, found, lookupErr := t.FindTopic(ctx, topic, query)
			if lookupErr != nil {
				return 0, fmt.Errorf("insert topic: %w", lookupErr)
			}
			if found {
				return 0, &model.DuplicateError{ExistingID: existing, Topic: topic, Query: query}
			}
		}
		return 0, fmt.Errorf("insert topic: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert topic: last insert id: %w", err)
	}
	return id, nil
}

// FindTopic looks up the id of an exact (topic, query) pair.
func (t *Tx) FindTopic(ctx context.Context, topic, query string) (int64, bool, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx, `
		SELECT id FROM topics WHERE topic = ? AND query = ?
	`, topic, query).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("find topic: %w", err)
	}
	return id, true, nil
}

// DeleteTopic removes one topic. Returns false if the id was not present.
func (t *Tx) DeleteTopic(ctx context.Context, id int64) (bool, error) {
	result, err := t.tx.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete topic %d: %w", id, err)
	}
	return affectedOne(result)
}

// DeleteAllTopics removes every topic and returns how many were removed.
func (t *Tx) DeleteAllTopics(ctx context.Context) (int64, error) {
	result, err := t.tx.ExecContext(ctx, `DELETE FROM topics`)
	if err != nil {
		return 0, fmt.Errorf("delete all topics: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all topics: rows affected: %w", err)
	}
	return n, nil
}

// SetTopicActive sets the active flag of one topic. Returns false if the
// id was not present. Setting a flag to its current value still reports
// true.
func (t *Tx) SetTopicActive(ctx context.Context, id int64, active bool) (bool, error) {
	result, err := t.tx.ExecContext(ctx, `
		UPDATE topics SET isactive = ? WHERE id = ?
	`, active, id)
	if err != nil {
		return false, fmt.Errorf("set topic %d active=%t: %w", id, active, err)
	}
	return affectedOne(result)
}

func affectedOne(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
