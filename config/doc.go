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


// Package config holds the job description and secrets for an ingestion run.
//
// A Job names the bucket, the storage backend, the sources to acquire and
// the refinement settings. DefaultJob returns a complete job for the rental
// policy corpus; LoadJob overlays a YAML file on those defaults, so a job file
// only needs the fields it changes:
//
//	bucket: my-corpus
//	acquisition:
//	  scraper: readability
//	  urls:
//	    - https://example.com/rules
//	refinement:
//	  workers: 4
//	  failure_policy: skip
//
// Secrets come from the environment. LoadEnvFile loads a .env file first
// when one exists. Each secret is only required by the stage that uses it.
package config
