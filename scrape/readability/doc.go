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


// Package readability implements scrape.Scraper without a hosted service.
//
// A page is fetched with colly after consulting the site's robots.txt,
// decoded to UTF-8 using the response's declared charset, reduced to its
// main article by go-readability and flattened to plain text with goquery.
// Block elements become line breaks so paragraphs survive the flattening.
package readability
