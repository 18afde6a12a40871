package model

import (
	"strconv"
	"strings"
)

// SelectAll is the literal that selects every topic.
const SelectAll = "all"

// Selector picks topics by id for batch commands.
// A zero Selector selects nothing.
type Selector struct {
	All bool
	IDs []int64
}

// ParseSelector parses "all" or a comma-delimited list of ids.
// Ids keep the order given by the caller; repeats are preserved so that
// each occurrence is reported.
func ParseSelector(arg string) (Selector, error) {
	arg = strings.TrimSpace(arg)
	if arg == SelectAll {
		return Selector{All: true}, nil
	}

	ids, err := ParseIDList(arg)
	if err != nil {
		return Selector{}, err
	}
	return Selector{IDs: ids}, nil
}

// ParseIDList parses a comma-delimited list of positive integer ids.
func ParseIDList(arg string) ([]int64, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, NewUsageError("missing id")
	}

	parts := strings.Split(arg, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, NewUsageError("empty id in list %q", arg)
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, NewUsageError("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
