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


// Package acquisition implements the first stage of an ingestion run: it
// provisions the bucket, uploads a local source document, scrapes a list of
// web pages into one raw text file and uploads that file.
//
// # Raw text format
//
// Every document a scraper returns is written on its own line using
// core.Document's String form, so the refinement stage can read the file
// back as plain text.
//
// # Failure handling
//
// Only a bucket that cannot be created stops the stage. A local file that
// will not upload, a page that will not scrape and a scrape file that will
// not upload are recorded in the stage's report.Report and the run
// continues. The local scrape file is removed when Run returns, whether or
// not it succeeded, unless Config.KeepLocal is set.
//
// # Usage
//
//	pipeline, err := acquisition.NewPipeline(store, scraper, acquisition.Config{
//	    Bucket:     "ragproject-55612",
//	    Region:     "us-west-2",
//	    URLs:       urls,
//	    ScrapeFile: "rental_policy_text.txt",
//	    ScrapeKey:  "policy_documents/rental_policy_text.txt",
//	})
//	if err != nil {
//	    return err
//	}
//	rep, err := pipeline.Run(ctx)
package acquisition
