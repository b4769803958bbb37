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


package report

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/ragingest/core"
)

// Failure is one step that did not complete.
type Failure struct {
	Step string
	Item string
	Kind core.Kind
	Err  error
}

func (f Failure) String() string {
	if f.Item == "" {
		return fmt.Sprintf("%s (%s): %v", f.Step, f.Kind, f.Err)
	}
	return fmt.Sprintf("%s %s (%s): %v", f.Step, f.Item, f.Kind, f.Err)
}

// Success is one step that completed.
type Success struct {
	Step string
	Item string
}

// Report accumulates step outcomes for one stage.
type Report struct {
	Stage string

	mu         sync.Mutex
	startedAt  time.Time
	finishedAt time.Time
	succeeded  []Success
	failures   []Failure
}

// New starts a report for stage.
func New(stage string) *Report {
	return &Report{
		Stage:     stage,
		startedAt: time.Now(),
	}
}

// Succeeded records a completed step.
func (r *Report) Succeeded(step, item string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.succeeded = append(r.succeeded, Success{Step: step, Item: item})
}

// Failed records a failed step. The kind is taken from err's classification.
func (r *Report) Failed(step, item string, err error) {
	if r == nil || err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, Failure{
		Step: step,
		Item: item,
		Kind: core.KindOf(err),
		Err:  err,
	})
}

// Finish stamps the end time. Later calls are no-ops.
func (r *Report) Finish() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finishedAt.IsZero() {
		r.finishedAt = time.Now()
	}
}

// Failures returns a copy of the recorded failures in the order they happened.
func (r *Report) Failures() []Failure {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Failure(nil), r.failures...)
}

// Successes returns a copy of the completed steps in the order they happened.
func (r *Report) Successes() []Success {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Success(nil), r.succeeded...)
}

// SucceededCount returns the number of completed steps.
func (r *Report) SucceededCount() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.succeeded)
}

// HasFailures reports whether any step failed.
func (r *Report) HasFailures() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures) > 0
}

// Transient reports whether every recorded failure is transient, meaning a
// rerun may complete the stage.
func (r *Report) Transient() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.failures) == 0 {
		return false
	}
	for _, f := range r.failures {
		if f.Kind != core.KindTransient {
			return false
		}
	}
	return true
}

// Duration returns the time between New and Finish, or until now if unfinished.
func (r *Report) Duration() time.Duration {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finishedAt.IsZero() {
		return time.Since(r.startedAt)
	}
	return r.finishedAt.Sub(r.startedAt)
}

// Log writes the summary line and one warning per failure. The summary's
// rerunnable attribute is set when every failure was transient.
func (r *Report) Log(logger *slog.Logger) {
	if r == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	failures := r.Failures()
	duration := r.Duration()

	for _, f := range failures {
		logger.Warn("step failed",
			"stage", r.Stage,
			"step", f.Step,
			"item", f.Item,
			"kind", f.Kind,
			"error", f.Err,
		)
	}
	logger.Info("stage finished",
		"stage", r.Stage,
		"succeeded", r.SucceededCount(),
		"failed", len(failures),
		"rerunnable", r.Transient(),
		"duration", duration.Round(time.Millisecond),
	)
}
