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

import "errors"

var (
	// ErrGeneratorRequired is returned when a text generator is not provided.
	ErrGeneratorRequired = errors.New("text generator required")

	// ErrObjectStoreRequired is returned when an object store is not provided.
	ErrObjectStoreRequired = errors.New("object store required")

	// ErrFormatterRequired is returned when a formatter is not provided.
	ErrFormatterRequired = errors.New("formatter required")

	// ErrInvalidPromptTemplate indicates a template without exactly one chunk placeholder.
	ErrInvalidPromptTemplate = errors.New("prompt template must contain exactly one %s placeholder")

	// ErrInvalidFailurePolicy indicates an unknown failure policy name.
	ErrInvalidFailurePolicy = errors.New("invalid failure policy")

	// ErrAllChunksFailed is returned under SkipFailedChunks when no chunk could be formatted.
	ErrAllChunksFailed = errors.New("all chunks failed to format")
)
