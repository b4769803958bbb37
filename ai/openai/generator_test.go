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


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/ragingest/ai"
	"github.com/poiesic/ragingest/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *ai.Config {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return ai.NewConfig(
		ai.WithHost(server.URL),
		ai.WithToken("sk-test"),
		ai.WithModel("gpt-4"),
	)
}

func TestNewGenerator_InvalidConfig(t *testing.T) {
	gen, err := NewGenerator(ai.DefaultConfig())
	require.Error(t, err)
	assert.Nil(t, gen)
}

func TestGenerator_Generate(t *testing.T) {
	var received struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content any    `json:"content"`
		} `json:"messages"`
	}

	cfg := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "Formatted lease policy."},
				"finish_reason": "stop"
			}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 4, "total_tokens": 14}
		}`)
	})

	gen, err := NewGenerator(cfg)
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "Please format: lease policy")
	require.NoError(t, err)
	assert.Equal(t, "Formatted lease policy.", text)
	assert.Equal(t, "gpt-4", received.Model)
	require.NotEmpty(t, received.Messages)
	assert.Equal(t, "user", received.Messages[len(received.Messages)-1].Role)
}

func TestGenerator_GenerateRateLimited(t *testing.T) {
	cfg := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error": {"message": "Rate limit reached", "type": "requests"}}`)
	})

	gen, err := NewGenerator(cfg)
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, core.IsTransient(err), "rate limiting should be transient: %v", err)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() context.Context
		err  error
		want core.Kind
	}{
		{
			name: "deadline exceeded",
			ctx:  context.Background,
			err:  context.DeadlineExceeded,
			want: core.KindTransient,
		},
		{
			name: "caller canceled",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			err:  errors.New("request aborted"),
			want: core.KindFatal,
		},
		{
			name: "network error",
			ctx:  context.Background,
			err:  &netTimeout{},
			want: core.KindTransient,
		},
		{
			name: "server error",
			ctx:  context.Background,
			err:  errors.New("API returned unexpected status code: 503: overloaded"),
			want: core.KindTransient,
		},
		{
			name: "bad api key",
			ctx:  context.Background,
			err:  errors.New("API returned unexpected status code: 401: Incorrect API key provided"),
			want: core.KindFatal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.ctx(), tt.err)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, opGenerate, got.Op)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

type netTimeout struct{}

func (*netTimeout) Error() string   { return "i/o timeout" }
func (*netTimeout) Timeout() bool   { return true }
func (*netTimeout) Temporary() bool { return true }
