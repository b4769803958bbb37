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


// Package scrape defines the Scraper abstraction used by the acquisition
// stage to turn a web page into documents.
//
// Implementations live in subpackages:
//   - firecrawl: the hosted Firecrawl scraping API (markdown output)
//   - readability: local fetch with colly and article extraction with go-readability
//   - mock: a test double
//
// Scrapers classify their failures with core.Error so the caller can tell a
// throttled or unavailable site from a page that will never scrape.
package scrape
