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


// Package firecrawl implements scrape.Scraper on the hosted Firecrawl API.
//
// Each Scrape call issues one single-page scrape request asking for markdown
// output. The page's markdown becomes the document content and Firecrawl's
// page metadata becomes the document metadata.
package firecrawl
