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


// Package ai provides abstractions for the text-generation service used by
// the refinement pipeline.
//
// The refinement pipeline depends only on the TextGenerator interface, so the
// hosted model can be swapped for a local OpenAI-compatible server or a test
// double without touching the pipeline.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible chat APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewGenerator) return the INTERFACE type to keep
// callers decoupled from the concrete client. Test constructors
// (mock.NewMockGenerator) return CONCRETE types so tests can inject behavior
// and inspect calls.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithToken(os.Getenv("OPENAI_API_KEY")))
//	generator, err := openai.NewGenerator(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := generator.Generate(ctx, "Please format the following ...")
package ai
