package model

import (
	"strconv"
	"time"
)

// Topic is a tracked (topic, query, active) triple with a stable id.
type Topic struct {
	ID     int64  `json:"id" yaml:"id"`
	Topic  string `json:"topic" yaml:"topic"`
	Query  string `json:"query" yaml:"query"`
	Active bool   `json:"active" yaml:"active"`
}

// ResultID is the remote identifier of a search result.
//
// Remote identifiers are decimal strings on the wire. They are kept as int64
// so that the watermark is a numeric maximum rather than a lexical one.
type ResultID int64

// ParseResultID parses a decimal remote identifier.
func ParseResultID(s string) (ResultID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ResultID(n), nil
}

// String returns the decimal form used on the wire.
func (id ResultID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Post is a single result as returned by the remote search capability,
// before it is attributed to a topic.
type Post struct {
	ID        ResultID
	CreatedAt time.Time
	User      string
	Text      string
}

// Result is a stored search result.
type Result struct {
	ID        ResultID  `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	User      string    `json:"user" yaml:"user"`
	Text      string    `json:"text" yaml:"text"`
	Topic     string    `json:"topic" yaml:"topic"`
	Query     string    `json:"query" yaml:"query"`

	// FetchedAt is the start time of the run that stored the record.
	// Every record of one run carries the same value.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}
