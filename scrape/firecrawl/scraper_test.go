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
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/ragingest/core"
	"github.com/poiesic/ragingest/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://www.apartments.com/amherst-manor-apartments-williamsville-ny/6qjx6qv/"

func newTestScraper(t *testing.T, handler http.HandlerFunc) *Scraper {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s, err := New("fc-test", WithBaseURL(server.URL))
	require.NoError(t, err)
	return s
}

func TestNew_MissingKey(t *testing.T) {
	s, err := New("")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Nil(t, s)
}

func TestScrape_Success(t *testing.T) {
	var received scrapeRequest
	s := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/scrape", r.URL.Path)
		assert.Equal(t, "Bearer fc-test", r.Header.Get("Authorization"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"success": true,
			"data": {
				"markdown": "# Amherst Manor\n\nPets allowed.",
				"metadata": {"title": "Amherst Manor", "statusCode": 200, "ogImage": null}
			}
		}`)
	})

	docs, err := s.Scrape(context.Background(), pageURL)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, pageURL, received.URL)
	assert.Equal(t, []string{"markdown"}, received.Formats)

	assert.Equal(t, "# Amherst Manor\n\nPets allowed.", docs[0].Content)
	assert.Equal(t, "Amherst Manor", docs[0].Metadata["title"])
	assert.Equal(t, "200", docs[0].Metadata["statusCode"])
	assert.Equal(t, pageURL, docs[0].Metadata[scrape.MetaSourceURL])
	assert.NotContains(t, docs[0].Metadata, "ogImage")
}

func TestScrape_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   core.Kind
	}{
		{"rate limited", http.StatusTooManyRequests, `{"success":false,"error":"rate limit exceeded"}`, core.KindTransient},
		{"server error", http.StatusBadGateway, `{"success":false,"error":"upstream"}`, core.KindTransient},
		{"unauthorized", http.StatusUnauthorized, `{"success":false,"error":"invalid token"}`, core.KindFatal},
		{"payment required", http.StatusPaymentRequired, `{"success":false,"error":"out of credits"}`, core.KindFatal},
		{"success false", http.StatusOK, `{"success":false,"error":"blocked"}`, core.KindFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			docs, err := s.Scrape(context.Background(), pageURL)
			require.Error(t, err)
			assert.Nil(t, docs)
			assert.Equal(t, tt.kind, core.KindOf(err))
		})
	}
}

func TestScrape_EmptyMarkdown(t *testing.T) {
	s := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":{"markdown":"","metadata":{"title":"Amherst Manor"}}}`)
	})

	docs, err := s.Scrape(context.Background(), pageURL)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Empty(t, docs[0].Content)
	assert.Equal(t, "Amherst Manor", docs[0].Metadata["title"])
	assert.Equal(t, pageURL, docs[0].Metadata[scrape.MetaSourceURL])
	assert.Equal(t, `page_content="" metadata={"sourceURL": "`+pageURL+`", "title": "Amherst Manor"}`, docs[0].String())
}

func TestScrape_ErrorMessageFromAPI(t *testing.T) {
	s := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"success":false,"error":"invalid token"}`)
	})

	_, err := s.Scrape(context.Background(), pageURL)
	require.Error(t, err)
	assert.ErrorIs(t, err, scrape.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "invalid token")
	assert.Contains(t, err.Error(), "401")
}

func TestScrape_InvalidURL(t *testing.T) {
	s := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := s.Scrape(context.Background(), "ftp://example.com/file")
	assert.ErrorIs(t, err, core.ErrInvalidURL)
	assert.Equal(t, core.KindFatal, core.KindOf(err))
}

func TestScrape_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	s, err := New("fc-test", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = s.Scrape(context.Background(), pageURL)
	require.Error(t, err)
	assert.True(t, core.IsTransient(err))
}

func TestFlattenMetadata(t *testing.T) {
	got := flattenMetadata(map[string]any{
		"title":    "Lease",
		"code":     float64(404),
		"ratio":    0.5,
		"robots":   true,
		"missing":  nil,
		"keywords": []any{"a", "b"},
	})

	assert.Equal(t, map[string]string{
		"title":    "Lease",
		"code":     "404",
		"ratio":    "0.5",
		"robots":   "true",
		"keywords": "[a b]",
	}, got)
}
