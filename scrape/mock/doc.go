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


// Package mock provides a test double for scrape.Scraper.
//
// # Usage
//
//	scraper := mock.NewMockScraper()
//	scraper.Pages["https://example.com/"] = "page text"
//	scraper.Errors["https://example.com/down"] = core.Transient("scrape", url, err)
//
//	urls := scraper.Calls()
//
// # Default Behavior
//
// URLs with neither a page nor an error produce one document whose content
// names the URL.
package mock
