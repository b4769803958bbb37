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


// Package textproc holds the text transforms of the refinement pipeline:
// decoding downloaded bytes, cleaning scraped text and splitting it into
// chunks small enough for a single generation request.
//
// Clean is lossy on purpose: every character outside ASCII letters, digits
// and whitespace is removed, punctuation included.
//
//	cleaned := textproc.Clean(textproc.Decode(raw))
//	for chunk := range textproc.Split(cleaned, textproc.DefaultMaxChunkLength) {
//	    ...
//	}
//
// Lengths are counted in runes, not bytes.
package textproc
