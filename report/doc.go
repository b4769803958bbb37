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


// Package report collects the outcome of each step of a pipeline run.
//
// A Report is the single place per-item failures end up: a URL that would
// not scrape, an upload that failed, a chunk the generator rejected. Steps
// record into it and keep going; the command line logs the summary once
// when the stage ends.
//
// All Report methods are safe for concurrent use and accept a nil receiver,
// so components can take an optional report without checking it.
//
// ProgressTracker prints a one-line progress indicator for long loops such
// as chunk formatting.
package report
