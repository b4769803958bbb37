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


package refinement

import (
	"fmt"
	"strings"
)

// ChunkPlaceholder marks where a chunk is inserted into a prompt template.
const ChunkPlaceholder = "%s"

// DefaultPromptTemplate asks the generator to tidy one chunk of scraped text.
const DefaultPromptTemplate = "Please format the following scraped file into a good looking proper text:\n\n" + ChunkPlaceholder

// validatePromptTemplate checks the template has exactly one placeholder.
func validatePromptTemplate(tmpl string) error {
	if n := strings.Count(tmpl, ChunkPlaceholder); n != 1 {
		return fmt.Errorf("%w: found %d", ErrInvalidPromptTemplate, n)
	}
	return nil
}

// buildPrompt embeds chunk verbatim into tmpl. The chunk is inserted by
// substitution, so format verbs inside it are left alone.
func buildPrompt(tmpl, chunk string) string {
	return strings.Replace(tmpl, ChunkPlaceholder, chunk, 1)
}
