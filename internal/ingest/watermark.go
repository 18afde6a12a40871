package ingest

import (
	"context"

	"github.com/roach88/tweetscrape/internal/model"
)

// WatermarkReader is the storage surface needed to resolve a watermark.
type WatermarkReader interface {
	HighestResultID(ctx context.Context, query string) (model.ResultID, bool, error)
}

// HighestSeen returns the highest stored result id for the exact query
// string. ok is false when nothing has been stored for the query yet.
func HighestSeen(ctx context.Context, r WatermarkReader, query string) (id model.ResultID, ok bool, err error) {
	id, ok, err = r.HighestResultID(ctx, query)
	if err != nil {
		return 0, false, &model.StorageError{Op: "resolve watermark", Err: err}
	}
	return id, ok, nil
}
