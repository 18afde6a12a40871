package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMissingBearerToken is returned by RequireCredentials when no token is
// configured.
var ErrMissingBearerToken = errors.New("search.bearer_token is required to run ingestion (set TWEETSCRAPE_BEARER_TOKEN)")

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path must not be empty")
	}

	if err := c.Search.validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if _, ok := logLevels[c.Log.Level]; !ok {
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}

	return nil
}

// RequireCredentials checks the settings only an ingestion run needs.
func (c *Config) RequireCredentials() error {
	if strings.TrimSpace(c.Search.BearerToken) == "" {
		return ErrMissingBearerToken
	}
	return nil
}

func (s *SearchConfig) validate() error {
	if s.PageSize < 10 || s.PageSize > 100 {
		return fmt.Errorf("page_size must be between 10 and 100 (got %d)", s.PageSize)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", s.Timeout)
	}
	if s.ResultType != "recent" && s.ResultType != "all" {
		return fmt.Errorf("result_type must be recent or all (got %q)", s.ResultType)
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got %q)", s.BaseURL)
	}
	return nil
}
