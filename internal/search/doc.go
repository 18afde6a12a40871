// Package search implements the remote search capability over the v2 recent
// and full-archive search endpoints.
//
// Requests are authenticated with an app-only bearer token. Each call fetches
// a single page; there is no pagination, retry, or backoff. Author ids are
// resolved to usernames through the author_id expansion.
package search
