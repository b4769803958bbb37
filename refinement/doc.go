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


// Package refinement implements the second stage of an ingestion run: it
// downloads the raw scrape text, cleans it, has a text generator reformat it
// chunk by chunk and uploads the result.
//
// # Formatting
//
// Formatter splits cleaned text with textproc.Chunks, wraps each chunk in a
// prompt and joins the generator's responses with a blank line. Responses
// are stored by chunk index and assembled in index order, so the output
// order matches the input order whether chunks are formatted one at a time
// (the default) or fanned out over a worker pool with WithWorkers.
//
// # Failure policy
//
// AbortOnError (the default) stops at the first generation failure and
// returns it. SkipFailedChunks drops failed chunks from the output, records
// each in the report and only fails when no chunk could be formatted.
//
// # Usage
//
//	formatter, err := refinement.NewFormatter(generator,
//	    refinement.WithWorkers(4),
//	    refinement.WithFailurePolicy(refinement.SkipFailedChunks),
//	)
//	if err != nil {
//	    return err
//	}
//	text, err := formatter.Format(ctx, cleaned)
package refinement
