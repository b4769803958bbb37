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


package textproc

import (
	"iter"
	"unicode"

	"github.com/poiesic/ragingest/core"
)

// DefaultMaxChunkLength is the chunk limit used when none is configured.
const DefaultMaxChunkLength = 8000

// Split lazily divides text into chunks of at most maxChunkLength runes.
//
// Text no longer than the limit is yielded once, unchanged, even when empty.
// Longer text is cut at the last whitespace rune at or before index
// maxChunkLength; that rune is not part of either side. When there is no such
// whitespace the text is cut hard at maxChunkLength. The remainder is trimmed
// of surrounding whitespace before the next cut, and an empty final remainder
// yields nothing. A non-positive limit yields nothing.
func Split(text string, maxChunkLength int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if maxChunkLength <= 0 {
			return
		}

		runes := []rune(text)
		if len(runes) <= maxChunkLength {
			yield(text)
			return
		}

		for len(runes) > maxChunkLength {
			cut := lastSpace(runes, maxChunkLength)
			if cut < 0 {
				cut = maxChunkLength
			}
			chunk := runes[:cut]
			runes = trimSpace(runes[cut:])

			// A cut at index 0 leaves nothing worth sending.
			if len(chunk) == 0 {
				continue
			}
			if !yield(string(chunk)) {
				return
			}
		}

		if len(runes) > 0 {
			yield(string(runes))
		}
	}
}

// Chunks materializes Split into indexed chunks.
func Chunks(text string, maxChunkLength int) ([]core.Chunk, error) {
	if maxChunkLength <= 0 {
		return nil, ErrInvalidChunkLength
	}
	var chunks []core.Chunk
	for s := range Split(text, maxChunkLength) {
		chunks = append(chunks, core.Chunk{Index: len(chunks), Text: s})
	}
	return chunks, nil
}

// lastSpace returns the index of the last whitespace rune in runes[0:limit+1], or -1.
func lastSpace(runes []rune, limit int) int {
	if limit >= len(runes) {
		limit = len(runes) - 1
	}
	for i := limit; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

func trimSpace(runes []rune) []rune {
	start, end := 0, len(runes)
	for start < end && unicode.IsSpace(runes[start]) {
		start++
	}
	for end > start && unicode.IsSpace(runes[end-1]) {
		end--
	}
	return runes[start:end]
}
