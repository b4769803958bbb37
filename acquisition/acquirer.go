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


package acquisition

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/ragingest/report"
	"github.com/poiesic/ragingest/scrape"
)

const stepScrape = "scrape"

// Acquirer scrapes URLs and writes the resulting documents as text lines.
type Acquirer struct {
	scraper scrape.Scraper
	logger  *slog.Logger
}

// NewAcquirer creates an Acquirer. A nil logger uses slog.Default().
func NewAcquirer(scraper scrape.Scraper, logger *slog.Logger) (*Acquirer, error) {
	if scraper == nil {
		return nil, ErrScraperRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Acquirer{scraper: scraper, logger: logger}, nil
}

// Acquire scrapes each URL in order and writes one line per document to w.
// A URL that fails to scrape is recorded in rep and skipped. Acquire stops
// early only when ctx is done or w fails. Returns the number of documents written.
func (a *Acquirer) Acquire(ctx context.Context, urls []string, w io.Writer, rep *report.Report) (int, error) {
	written := 0
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		a.logger.Info("processing url", "url", url)
		docs, err := a.scraper.Scrape(ctx, url)
		if err != nil {
			a.logger.Warn("scrape failed", "url", url, "error", err)
			rep.Failed(stepScrape, url, err)
			continue
		}

		for _, doc := range docs {
			if _, err := io.WriteString(w, doc.String()+"\n"); err != nil {
				return written, fmt.Errorf("writing scraped document for %s: %w", url, err)
			}
			written++
		}
		rep.Succeeded(stepScrape, url)
		a.logger.Debug("url scraped", "url", url, "documents", len(docs))
	}
	return written, nil
}
