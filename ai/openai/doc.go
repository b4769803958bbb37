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


// Package openai provides the text-generation service using OpenAI-compatible APIs.
//
// This package implements ai.TextGenerator with the langchaingo library, so it
// works against api.openai.com as well as OpenAI-compatible servers such as
// Ollama, LocalAI or vLLM.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithToken(os.Getenv("OPENAI_API_KEY")),
//	    ai.WithModel("gpt-4"),
//	)
//
//	generator, err := openai.NewGenerator(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, err := generator.Generate(ctx, prompt)
//
// Errors returned by Generate are *core.Error values. Throttling, timeouts and
// server-side failures are classified transient, everything else fatal.
package openai
