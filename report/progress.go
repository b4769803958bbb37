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
	"io"
	"sync"
	"time"
)

// ProgressTracker prints a single updating progress line for a loop over a
// known number of items, counting failed items separately.
// A nil tracker ignores every call.
type ProgressTracker struct {
	mu      sync.Mutex
	w       io.Writer
	unit    string
	total   int
	every   int
	done    int
	failed  int
	printed int
	started time.Time
}

// NewProgressTracker returns a tracker writing to w. unit names the items
// ("chunks"); a line is printed every reportInterval items, and at least
// once per item when reportInterval is below 1.
func NewProgressTracker(w io.Writer, unit string, total, reportInterval int) *ProgressTracker {
	return &ProgressTracker{
		w:     w,
		unit:  unit,
		total: total,
		every: max(reportInterval, 1),
	}
}

// Start resets the counts and the clock.
func (p *ProgressTracker) Start() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = time.Now()
	p.done, p.failed, p.printed = 0, 0, 0
}

// Done records one finished item. Calls before Start are ignored.
func (p *ProgressTracker) Done(ok bool) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started.IsZero() || p.done >= p.total {
		return
	}
	p.done++
	if !ok {
		p.failed++
	}
	if p.done-p.printed >= p.every || p.done == p.total {
		p.print()
		p.printed = p.done
	}
}

// Finish prints the final line and ends it. A loop that stopped early keeps
// its count so the line shows where it stopped.
func (p *ProgressTracker) Finish() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started.IsZero() {
		return
	}
	p.print()
	fmt.Fprintln(p.w)
}

// print writes the progress line. Caller holds mu.
func (p *ProgressTracker) print() {
	var pct, rate float64
	if p.total > 0 {
		pct = float64(p.done) * 100 / float64(p.total)
	}
	if secs := time.Since(p.started).Seconds(); secs > 0 {
		rate = float64(p.done) / secs
	}
	fmt.Fprintf(p.w, "\rProgress: %d/%d %s (%.1f%%, %d failed) - %.1f %s/s",
		p.done, p.total, p.unit, pct, p.failed, rate, p.unit)
}
