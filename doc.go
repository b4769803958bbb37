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


// Package ragingest prepares web and document content for retrieval
// augmented generation. A run has two stages:
//
//   - Acquisition provisions a bucket, uploads a local source document and
//     scrapes a list of pages into a raw text object.
//   - Refinement downloads that object, strips it to letters, digits and
//     whitespace, has a language model reformat it in bounded chunks and
//     uploads the result.
//
// Runner wires the stages to the collaborators a config.Job names: an S3 or
// local badger object store, the Firecrawl or readability scraper and an
// OpenAI-compatible text generator. Each collaborator can be replaced with
// a RunnerOption.
//
//	runner, err := ragingest.NewRunner(ctx, job, config.SecretsFromEnv(nil))
//	if err != nil {
//	    return err
//	}
//	defer runner.Close()
//
//	rep, err := runner.Acquire(ctx)
//	rep.Log(logger)
package ragingest
