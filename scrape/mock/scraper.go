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


package mock

import (
	"context"
	"sync"

	"github.com/poiesic/ragingest/core"
	"github.com/poiesic/ragingest/scrape"
)

// MockScraper is a test double for scrape.Scraper.
// It is safe for concurrent use once configured.
type MockScraper struct {
	// Pages maps a URL to the content of the document returned for it.
	Pages map[string]string
	// Errors maps a URL to the error returned for it.
	Errors map[string]error
	// ScrapeFunc, if set, overrides Pages and Errors.
	ScrapeFunc func(ctx context.Context, url string) ([]core.Document, error)

	mu    sync.Mutex
	calls []string
}

var _ scrape.Scraper = (*MockScraper)(nil)

// NewMockScraper creates a mock scraper with empty page and error tables.
// Note: Returns concrete type to allow test assertions.
func NewMockScraper() *MockScraper {
	return &MockScraper{
		Pages:  make(map[string]string),
		Errors: make(map[string]error),
	}
}

// Scrape records the URL and returns the configured result.
func (m *MockScraper) Scrape(ctx context.Context, url string) ([]core.Document, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	fn := m.ScrapeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, url)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errors[url]; ok {
		return nil, err
	}

	content, ok := m.Pages[url]
	if !ok {
		content = "content of " + url
	}
	return []core.Document{{
		Content:  content,
		Metadata: map[string]string{scrape.MetaSourceURL: url},
	}}, nil
}

// Calls returns a copy of the URLs scraped, in call order.
func (m *MockScraper) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Reset clears recorded calls.
func (m *MockScraper) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
