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


package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables holding secrets.
const (
	EnvFirecrawlAPIKey = "FIRECRAWL_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
)

// Secrets holds API keys read from the environment.
type Secrets struct {
	FirecrawlAPIKey string
	OpenAIAPIKey    string
}

// LoadEnvFile loads variables from path into the process environment.
// Variables already set are not overridden. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// SecretsFromEnv reads secrets with lookup. A nil lookup uses os.LookupEnv.
func SecretsFromEnv(lookup func(string) (string, bool)) *Secrets {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	return &Secrets{
		FirecrawlAPIKey: get(EnvFirecrawlAPIKey),
		OpenAIAPIKey:    get(EnvOpenAIAPIKey),
	}
}

// RequireFirecrawl returns the Firecrawl key or ErrMissingSecret.
func (s *Secrets) RequireFirecrawl() (string, error) {
	if s == nil || s.FirecrawlAPIKey == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrMissingSecret, EnvFirecrawlAPIKey)
	}
	return s.FirecrawlAPIKey, nil
}

// RequireOpenAI returns the OpenAI key or ErrMissingSecret.
func (s *Secrets) RequireOpenAI() (string, error) {
	if s == nil || s.OpenAIAPIKey == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrMissingSecret, EnvOpenAIAPIKey)
	}
	return s.OpenAIAPIKey, nil
}
