// Package ingest runs the incremental fetch of search results.
//
// A run visits every active topic in registry order. For each topic it
// resolves the watermark of the topic's query, asks the remote search for
// one page of results strictly after that watermark, and writes each new
// result exactly once.
//
// WATERMARK:
// The watermark is max(tweetid) over the stored results of a query string.
// It is recomputed from the session on every lookup and never cached, so it
// always reflects what the current run has already written. Topics that
// share a query string share a watermark.
//
// ATOMICITY:
// The engine never commits. Every read and write goes through the Session
// it is handed; when Run returns an error the caller rolls the session back
// and nothing from the run is kept.
//
// Only one page is fetched per topic per run. Results beyond the page are
// picked up by later runs because the watermark only moves to the highest
// id actually stored.
package ingest
