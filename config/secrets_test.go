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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretsFromEnv(t *testing.T) {
	env := map[string]string{EnvFirecrawlAPIKey: "fc-1"}
	secrets := SecretsFromEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	key, err := secrets.RequireFirecrawl()
	require.NoError(t, err)
	assert.Equal(t, "fc-1", key)

	_, err = secrets.RequireOpenAI()
	assert.ErrorIs(t, err, ErrMissingSecret)
	assert.Contains(t, err.Error(), EnvOpenAIAPIKey)

	var nilSecrets *Secrets
	_, err = nilSecrets.RequireFirecrawl()
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file ignored", func(t *testing.T) {
		assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))
		assert.NoError(t, LoadEnvFile(""))
	})

	t.Run("loads without overriding", func(t *testing.T) {
		t.Setenv(EnvFirecrawlAPIKey, "from-env")
		t.Setenv(EnvOpenAIAPIKey, "")
		os.Unsetenv(EnvOpenAIAPIKey)

		path := writeFile(t, ".env", "FIRECRAWL_API_KEY=from-file\nOPENAI_API_KEY=sk-file\n")
		require.NoError(t, LoadEnvFile(path))

		secrets := SecretsFromEnv(nil)
		assert.Equal(t, "from-env", secrets.FirecrawlAPIKey)
		assert.Equal(t, "sk-file", secrets.OpenAIAPIKey)
	})
}
