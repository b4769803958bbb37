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
	"errors"
	"net"
	"strings"

	"github.com/poiesic/ragingest/core"
)

const opGenerate = "generate"

// transientMarkers are substrings of API error messages that indicate a
// failure worth retrying on a later run.
var transientMarkers = []string{
	"429",
	"rate limit",
	"500",
	"502",
	"503",
	"504",
	"overloaded",
	"timeout",
	"timed out",
	"connection reset",
	"eof",
}

// classify wraps a generation error as transient or fatal.
func classify(ctx context.Context, err error) *core.Error {
	// Cancellation by the caller is never worth retrying.
	if errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled {
		return core.Fatal(opGenerate, "", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return core.Transient(opGenerate, "", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return core.Transient(opGenerate, "", err)
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return core.Transient(opGenerate, "", err)
		}
	}
	return core.Fatal(opGenerate, "", err)
}
