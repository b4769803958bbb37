// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package firecrawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/poiesic/ragingest/core"
	"github.com/poiesic/ragingest/scrape"
)

const (
	// DefaultBaseURL is the hosted Firecrawl API.
	DefaultBaseURL = "https://api.firecrawl.dev"
	// DefaultTimeout bounds a single scrape request.
	DefaultTimeout = 2 * time.Minute

	scrapePath = "/v1/scrape"
	opScrape   = "scrape"
)

// ErrMissingAPIKey indicates the client was built without an API key.
var ErrMissingAPIKey = errors.New("firecrawl api key is required")

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string         `json:"markdown"`
		Metadata map[string]any `json:"metadata"`
	} `json:"data"`
	Error string `json:"error"`
}

type apiError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Scraper calls the Firecrawl scrape endpoint.
type Scraper struct {
	client *resty.Client
	logger *slog.Logger
}

var _ scrape.Scraper = (*Scraper)(nil)

// Option configures a Scraper.
type Option func(*Scraper)

// WithBaseURL points the scraper at a different API host.
func WithBaseURL(baseURL string) Option {
	return func(s *Scraper) {
		s.client.SetBaseURL(baseURL)
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.SetTimeout(d)
	}
}

// New creates a Firecrawl scraper authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Scraper, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := resty.New().
		SetBaseURL(DefaultBaseURL).
		SetTimeout(DefaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(apiKey)

	s := &Scraper{
		client: client,
		logger: slog.Default().With("component", "firecrawl"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Scrape fetches url through Firecrawl and returns one markdown document.
// A page without markdown yields a document with empty content.
func (s *Scraper) Scrape(ctx context.Context, url string) ([]core.Document, error) {
	if err := core.ValidateURL(url); err != nil {
		return nil, core.Fatal(opScrape, url, err)
	}

	var result scrapeResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(scrapeRequest{URL: url, Formats: []string{"markdown"}}).
		SetResult(&result).
		SetError(&apiError{}).
		Post(scrapePath)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, core.Fatal(opScrape, url, err)
		}
		// Transport failures and timeouts.
		return nil, core.Transient(opScrape, url, err)
	}

	if resp.IsError() {
		msg := resp.Status()
		if apiErr, ok := resp.Error().(*apiError); ok && apiErr != nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		err := fmt.Errorf("%w: %d: %s", scrape.ErrUnexpectedStatus, resp.StatusCode(), msg)
		if isTransientStatus(resp.StatusCode()) {
			return nil, core.Transient(opScrape, url, err)
		}
		return nil, core.Fatal(opScrape, url, err)
	}

	if !result.Success {
		return nil, core.Fatal(opScrape, url, fmt.Errorf("firecrawl reported failure: %s", result.Error))
	}

	metadata := flattenMetadata(result.Data.Metadata)
	if _, ok := metadata[scrape.MetaSourceURL]; !ok {
		metadata[scrape.MetaSourceURL] = url
	}

	if result.Data.Markdown == "" {
		// The page is still recorded with its metadata.
		s.logger.Warn("page has no markdown content", "url", url)
	} else {
		s.logger.Debug("page scraped", "url", url, "bytes", len(result.Data.Markdown))
	}
	return []core.Document{{
		Content:  result.Data.Markdown,
		Metadata: metadata,
	}}, nil
}

// isTransientStatus reports whether a later attempt may get a different answer.
func isTransientStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

// flattenMetadata renders Firecrawl's loosely typed metadata as strings.
// Nulls are dropped.
func flattenMetadata(in map[string]any) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			out[k] = val
		case float64:
			out[k] = fmt.Sprintf("%g", val)
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
