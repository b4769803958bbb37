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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/gocolly/colly"
	"github.com/poiesic/ragingest/core"
	"github.com/poiesic/ragingest/scrape"
	"github.com/temoto/robotstxt"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultUserAgent identifies the scraper to sites and their robots.txt.
	DefaultUserAgent = "ragingest/1.0 (+https://github.com/poiesic/ragingest)"
	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 30 * time.Second

	opScrape = "scrape"
)

// ErrDisallowedByRobots indicates robots.txt forbids fetching the page.
var ErrDisallowedByRobots = errors.New("disallowed by robots.txt")

var (
	reHorizontalSpace = regexp.MustCompile(`[^\S\n]+`)
	blockElements     = []string{"div", "p", "br", "li", "td", "tr", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "section", "article"}
	reBlockOpen       = make(map[string]*regexp.Regexp, len(blockElements))
	reBlockClose      = make(map[string]*regexp.Regexp, len(blockElements))
)

func init() {
	for _, tag := range blockElements {
		reBlockOpen[tag] = regexp.MustCompile(`<` + tag + `(\s[^>]*)?/?>`)
		reBlockClose[tag] = regexp.MustCompile(`</` + tag + `>`)
	}
}

// Scraper fetches pages directly and extracts their readable content.
type Scraper struct {
	userAgent    string
	timeout      time.Duration
	ignoreRobots bool
	httpClient   *http.Client
	logger       *slog.Logger
}

var _ scrape.Scraper = (*Scraper)(nil)

// Option configures a Scraper.
type Option func(*Scraper)

// WithUserAgent sets the User-Agent header and robots.txt agent name.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		s.userAgent = ua
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.timeout = d
	}
}

// WithIgnoreRobots skips the robots.txt check.
func WithIgnoreRobots(ignore bool) Option {
	return func(s *Scraper) {
		s.ignoreRobots = ignore
	}
}

// New creates a readability scraper.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		logger:    slog.Default().With("component", "readability"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpClient = &http.Client{Timeout: s.timeout}
	return s
}

// Scrape fetches pageURL and returns its article as a single document.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) ([]core.Document, error) {
	if err := core.ValidateURL(pageURL); err != nil {
		return nil, core.Fatal(opScrape, pageURL, err)
	}
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, core.Fatal(opScrape, pageURL, err)
	}

	if !s.ignoreRobots {
		allowed, err := s.allowedByRobots(ctx, parsed)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, core.Fatal(opScrape, pageURL, ErrDisallowedByRobots)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, core.Fatal(opScrape, pageURL, err)
	}

	body, contentType, err := s.fetch(pageURL)
	if err != nil {
		return nil, err
	}

	text, err := decode(body, contentType)
	if err != nil {
		return nil, core.Fatal(opScrape, pageURL, err)
	}

	article, err := readability.FromReader(strings.NewReader(text), parsed)
	if err != nil {
		return nil, core.Fatal(opScrape, pageURL, fmt.Errorf("extracting article: %w", err))
	}

	content, err := flatten(article.Content)
	if err != nil {
		return nil, core.Fatal(opScrape, pageURL, err)
	}
	if content == "" {
		return nil, core.Fatal(opScrape, pageURL, scrape.ErrEmptyContent)
	}

	metadata := map[string]string{
		scrape.MetaSourceURL: pageURL,
		scrape.MetaScraper:   "readability",
	}
	if article.Title != "" {
		metadata[scrape.MetaTitle] = article.Title
	}
	if article.Byline != "" {
		metadata["byline"] = article.Byline
	}
	if article.SiteName != "" {
		metadata["siteName"] = article.SiteName
	}
	if article.Excerpt != "" {
		metadata["description"] = article.Excerpt
	}

	s.logger.Debug("page scraped", "url", pageURL, "title", article.Title, "bytes", len(content))
	return []core.Document{{Content: content, Metadata: metadata}}, nil
}

// fetch downloads pageURL with a single-use collector.
func (s *Scraper) fetch(pageURL string) ([]byte, string, error) {
	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(s.timeout)

	var (
		body        []byte
		contentType string
		status      int
	)
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
		if r.Headers != nil {
			contentType = r.Headers.Get("Content-Type")
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	if err := c.Visit(pageURL); err != nil {
		if status == 0 {
			return nil, "", core.Transient(opScrape, pageURL, err)
		}
		statusErr := fmt.Errorf("%w: %d", scrape.ErrUnexpectedStatus, status)
		if status >= 500 || status == http.StatusTooManyRequests || status == http.StatusRequestTimeout {
			return nil, "", core.Transient(opScrape, pageURL, statusErr)
		}
		return nil, "", core.Fatal(opScrape, pageURL, statusErr)
	}
	return body, contentType, nil
}

// allowedByRobots consults the host's robots.txt. A robots.txt that cannot be
// fetched does not block the page.
func (s *Scraper) allowedByRobots(ctx context.Context, u *url.URL) (bool, error) {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return false, core.Fatal(opScrape, u.String(), err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, core.Fatal(opScrape, u.String(), ctx.Err())
		}
		s.logger.Warn("robots.txt unavailable, continuing", "url", robotsURL, "error", err)
		return true, nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		s.logger.Warn("robots.txt unparsable, continuing", "url", robotsURL, "error", err)
		return true, nil
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, s.userAgent), nil
}

// decode converts body to UTF-8 text. Bodies that are already valid UTF-8
// are used as-is; otherwise the declared or sniffed charset applies.
func decode(body []byte, contentType string) (string, error) {
	if utf8.Valid(body) {
		return string(body), nil
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", fmt.Errorf("decoding charset: %w", err)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decoding charset: %w", err)
	}
	return string(decoded), nil
}

// flatten renders article HTML as plain text, one block per line.
func flatten(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(addBlockBreaks(html)))
	if err != nil {
		return "", fmt.Errorf("parsing article: %w", err)
	}
	return normalizeText(doc.Text()), nil
}

// addBlockBreaks surrounds block-level tags with newlines so their text
// does not run together once markup is stripped.
func addBlockBreaks(html string) string {
	result := html
	for _, tag := range blockElements {
		result = reBlockOpen[tag].ReplaceAllStringFunc(result, func(m string) string { return "\n" + m })
		result = reBlockClose[tag].ReplaceAllString(result, "</"+tag+">\n")
	}
	return result
}

// normalizeText collapses horizontal whitespace, trims each line and drops
// empty lines.
func normalizeText(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(reHorizontalSpace.ReplaceAllString(line, " "))
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
