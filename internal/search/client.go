package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/tweetscrape/internal/model"
)

const (
	// DefaultBaseURL is the public API host.
	DefaultBaseURL = "https://api.twitter.com"

	// ResultTypeRecent searches the last seven days.
	ResultTypeRecent = "recent"

	// ResultTypeAll searches the full archive. Requires elevated access.
	ResultTypeAll = "all"

	// The endpoint rejects max_results outside this range.
	minPageSize = 10
	maxPageSize = 100
)

// Client is a minimal client for the v2 search endpoints. It implements
// ingest.Searcher.
type Client struct {
	baseURL    string
	token      string
	resultType string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithResultType selects the recent or full-archive endpoint.
func WithResultType(rt string) Option {
	return func(c *Client) { c.resultType = rt }
}

// NewClient creates a search client authenticated with an app bearer token.
// If baseURL is empty, it defaults to DefaultBaseURL.
func NewClient(baseURL, token string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		resultType: ResultTypeRecent,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is returned for non-2xx responses and for 2xx responses that
// carry only errors.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// Search returns up to pageSize posts matching query with ids greater than
// sinceID, most recent first. A zero sinceID means no lower bound.
func (c *Client) Search(ctx context.Context, query string, sinceID model.ResultID, pageSize int) ([]model.Post, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(clampPageSize(pageSize)))
	params.Set("tweet.fields", "created_at,author_id")
	params.Set("expansions", "author_id")
	params.Set("user.fields", "username")
	if sinceID > 0 {
		params.Set("since_id", sinceID.String())
	}

	var resp searchResponse
	if err := c.get(ctx, "/2/tweets/search/"+c.resultType, params, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if err := resp.apiError(); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	posts, err := resp.posts()
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if pageSize > 0 && len(posts) > pageSize {
		posts = posts[:pageSize]
	}
	return posts, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

func clampPageSize(n int) int {
	switch {
	case n < minPageSize:
		return minPageSize
	case n > maxPageSize:
		return maxPageSize
	default:
		return n
	}
}

type searchResponse struct {
	Data     []tweet `json:"data"`
	Includes struct {
		Users []user `json:"users"`
	} `json:"includes"`
	Meta struct {
		ResultCount int    `json:"result_count"`
		NewestID    string `json:"newest_id"`
	} `json:"meta"`
	Errors []apiProblem `json:"errors"`
}

type tweet struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	AuthorID  string `json:"author_id"`
	CreatedAt string `json:"created_at"`
}

type user struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type apiProblem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// apiError reports a response that carries errors and no data. Partial
// errors alongside data, such as a deleted author, are tolerated.
func (r *searchResponse) apiError() error {
	if len(r.Data) > 0 || len(r.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, p := range r.Errors {
		msg := p.Title
		if p.Detail != "" {
			msg += ": " + p.Detail
		}
		msgs = append(msgs, msg)
	}
	return &APIError{StatusCode: http.StatusOK, Body: strings.Join(msgs, "; ")}
}

func (r *searchResponse) posts() ([]model.Post, error) {
	usernames := make(map[string]string, len(r.Includes.Users))
	for _, u := range r.Includes.Users {
		usernames[u.ID] = u.Username
	}

	posts := make([]model.Post, 0, len(r.Data))
	for _, t := range r.Data {
		id, err := model.ParseResultID(t.ID)
		if err != nil {
			return nil, fmt.Errorf("tweet id %q: %w", t.ID, err)
		}
		created, err := time.Parse(time.RFC3339, t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("tweet %s created_at %q: %w", t.ID, t.CreatedAt, err)
		}
		username, ok := usernames[t.AuthorID]
		if !ok {
			username = t.AuthorID
		}
		posts = append(posts, model.Post{
			ID:        id,
			CreatedAt: created.UTC(),
			User:      username,
			Text:      t.Text,
		})
	}
	return posts, nil
}
