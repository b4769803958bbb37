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


package readability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/poiesic/ragingest/core"
	"github.com/poiesic/ragingest/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Amherst Manor Apartments</title></head>
<body>
<nav><a href="/">Home</a> <a href="/rentals">Rentals</a></nav>
<article>
<h1>Amherst Manor Apartments</h1>
<p>Amherst Manor offers spacious one and two bedroom apartments in Williamsville, with heat and hot water included in every lease and on-site laundry in each building.</p>
<p>Pets are welcome with a monthly fee. Cats and small dogs under thirty pounds are allowed, and residents must register each animal with the leasing office before move-in.</p>
<p>Leases run for twelve months. Renewal notices are sent sixty days before the end of the term, and early termination requires two months of written notice to management.</p>
</article>
<footer>Copyright Amherst Manor</footer>
</body>
</html>`

func newSite(t *testing.T, robots string, pages map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		if robots == "" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, robots)
	})
	for path, h := range pages {
		mux.HandleFunc(path, h)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func servePage(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = io.WriteString(w, body)
	}
}

func TestScrape_Article(t *testing.T) {
	site := newSite(t, "", map[string]http.HandlerFunc{
		"/listing": servePage("text/html; charset=utf-8", articlePage),
	})

	docs, err := New().Scrape(context.Background(), site.URL+"/listing")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Contains(t, doc.Content, "Pets are welcome with a monthly fee.")
	assert.Contains(t, doc.Content, "Leases run for twelve months.")
	assert.NotContains(t, doc.Content, "<p>")
	assert.Equal(t, site.URL+"/listing", doc.Metadata[scrape.MetaSourceURL])
	assert.Equal(t, "readability", doc.Metadata[scrape.MetaScraper])
	assert.NotEmpty(t, doc.Metadata[scrape.MetaTitle])

	for _, line := range strings.Split(doc.Content, "\n") {
		assert.Equal(t, strings.TrimSpace(line), line)
		assert.NotEmpty(t, line)
	}
}

func TestScrape_RobotsDisallow(t *testing.T) {
	var requested atomic.Bool
	site := newSite(t, "User-agent: *\nDisallow: /private\n", map[string]http.HandlerFunc{
		"/private/listing": func(w http.ResponseWriter, r *http.Request) {
			requested.Store(true)
			servePage("text/html", articlePage)(w, r)
		},
	})

	_, err := New().Scrape(context.Background(), site.URL+"/private/listing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDisallowedByRobots)
	assert.Equal(t, core.KindFatal, core.KindOf(err))
	assert.False(t, requested.Load())

	t.Run("ignored when configured", func(t *testing.T) {
		docs, err := New(WithIgnoreRobots(true)).Scrape(context.Background(), site.URL+"/private/listing")
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})
}

func TestScrape_HTTPStatus(t *testing.T) {
	site := newSite(t, "", map[string]http.HandlerFunc{
		"/gone": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		},
		"/busy": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "busy", http.StatusServiceUnavailable)
		},
	})

	_, err := New().Scrape(context.Background(), site.URL+"/gone")
	require.Error(t, err)
	assert.ErrorIs(t, err, scrape.ErrUnexpectedStatus)
	assert.Equal(t, core.KindFatal, core.KindOf(err))

	_, err = New().Scrape(context.Background(), site.URL+"/busy")
	require.Error(t, err)
	assert.True(t, core.IsTransient(err))
}

func TestScrape_InvalidURL(t *testing.T) {
	_, err := New().Scrape(context.Background(), "not a url")
	assert.ErrorIs(t, err, core.ErrInvalidURL)
}

func TestScrape_Canceled(t *testing.T) {
	site := newSite(t, "", map[string]http.HandlerFunc{
		"/listing": servePage("text/html", articlePage),
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Scrape(ctx, site.URL+"/listing")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecode(t *testing.T) {
	t.Run("utf-8 passthrough", func(t *testing.T) {
		got, err := decode([]byte("café"), "text/html; charset=iso-8859-1")
		require.NoError(t, err)
		assert.Equal(t, "café", got)
	})

	t.Run("latin-1 converted", func(t *testing.T) {
		got, err := decode([]byte{'c', 'a', 'f', 0xE9}, "text/html; charset=iso-8859-1")
		require.NoError(t, err)
		assert.Equal(t, "café", got)
	})
}

func TestFlatten(t *testing.T) {
	got, err := flatten(`<div><h2>Rules</h2><p>No  smoking.</p><ul><li>Quiet hours</li><li>Parking<br/>permits</li></ul></div>`)
	require.NoError(t, err)
	assert.Equal(t, "Rules\nNo smoking.\nQuiet hours\nParking\npermits", got)
}
