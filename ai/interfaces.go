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


package ai

import "context"

// TextGenerator turns a prompt into a single text completion.
type TextGenerator interface {
	// Generate sends prompt to the model and returns the response text.
	// Calls are synchronous; implementations must be safe for concurrent use.
	// Errors should be classified with core.Fatal or core.Transient.
	Generate(ctx context.Context, prompt string) (string, error)
}
