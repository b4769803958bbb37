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
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(text string, limit int) []string {
	return slices.Collect(Split(text, limit))
}

func TestSplit_Scenario(t *testing.T) {
	chunks := collect("hello world this is text", 11)

	require.NotEmpty(t, chunks)
	assert.Equal(t, "hello world", chunks[0], "first cut is the space at index 11")
	assert.Equal(t, []string{"hello world", "this is", "text"}, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 11)
	}
}

func TestSplit_ShortText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
	}{
		{name: "empty text", text: "", limit: 10},
		{name: "shorter than limit", text: "lease policy", limit: 100},
		{name: "exactly the limit", text: "0123456789", limit: 10},
		{name: "whitespace only", text: "   ", limit: 10},
		{name: "multibyte runes count once", text: "héllo wörld", limit: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.text}, collect(tt.text, tt.limit))
		})
	}
}

func TestSplit_HardCut(t *testing.T) {
	chunks := collect("abcdefghijklmnopqrstuvwxyz", 10)
	assert.Equal(t, []string{"abcdefghij", "klmnopqrst", "uvwxyz"}, chunks)
}

func TestSplit_HardCutThenWhitespace(t *testing.T) {
	chunks := collect("abcdefghijkl mnop", 10)
	assert.Equal(t, []string{"abcdefghij", "kl mnop"}, chunks)
}

func TestSplit_TrimsRemainder(t *testing.T) {
	chunks := collect("alpha beta   \n\t  gamma delta", 10)
	assert.Equal(t, []string{"alpha beta", "gamma", "delta"}, chunks)
}

func TestSplit_TrailingWhitespaceOnlyRemainder(t *testing.T) {
	chunks := collect("alpha beta          ", 10)
	assert.Equal(t, []string{"alpha beta"}, chunks, "empty remainder after trimming emits no chunk")
}

func TestSplit_LeadingWhitespace(t *testing.T) {
	chunks := collect(" abcdefghijklmnop", 10)
	for _, c := range chunks {
		assert.NotEmpty(t, c)
	}
	assert.Equal(t, []string{"abcdefghij", "klmnop"}, chunks)
}

func TestSplit_NonPositiveLimit(t *testing.T) {
	assert.Empty(t, collect("some text", 0))
	assert.Empty(t, collect("some text", -5))
}

func TestSplit_StopsWhenConsumerStops(t *testing.T) {
	var seen []string
	for c := range Split(strings.Repeat("word ", 100), 10) {
		seen = append(seen, c)
		if len(seen) == 2 {
			break
		}
	}
	assert.Len(t, seen, 2)
}

func TestSplit_ReconstructsText(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"

	for round := 0; round < 200; round++ {
		limit := 5 + rng.IntN(40)
		words := make([]string, 1+rng.IntN(60))
		for i := range words {
			// No run of non-whitespace longer than the limit.
			n := 1 + rng.IntN(limit)
			var b strings.Builder
			for j := 0; j < n; j++ {
				b.WriteByte(letters[rng.IntN(len(letters))])
			}
			words[i] = b.String()
		}
		text := strings.Join(words, " ")

		chunks := collect(text, limit)
		for _, c := range chunks {
			require.LessOrEqual(t, utf8.RuneCountInString(c), limit, "chunk %q exceeds limit %d", c, limit)
		}
		require.Equal(t, text, strings.Join(chunks, " "), "round %d, limit %d", round, limit)
	}
}

func TestChunks(t *testing.T) {
	t.Run("indexes follow emission order", func(t *testing.T) {
		chunks, err := Chunks("one two three four five", 9)
		require.NoError(t, err)
		require.Len(t, chunks, 3)
		for i, c := range chunks {
			assert.Equal(t, i, c.Index)
		}
		assert.Equal(t, "one two", chunks[0].Text)
		assert.Equal(t, "three", chunks[1].Text)
		assert.Equal(t, "four five", chunks[2].Text)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := Chunks("text", 0)
		assert.ErrorIs(t, err, ErrInvalidChunkLength)
	})

	t.Run("default limit keeps small documents whole", func(t *testing.T) {
		chunks, err := Chunks("small document", DefaultMaxChunkLength)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "small document", chunks[0].Text)
	})
}
