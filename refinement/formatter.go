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

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/ragingest/ai"
	"github.com/poiesic/ragingest/core"
	"github.com/poiesic/ragingest/report"
	"github.com/poiesic/ragingest/textproc"
)

const (
	stepFormat = "format"

	// chunkSeparator joins formatted chunks in the assembled document.
	chunkSeparator = "\n\n"
)

// FailurePolicy decides what a generation failure does to the formatting run.
type FailurePolicy int

const (
	// AbortOnError stops at the first failed chunk and returns its error.
	AbortOnError FailurePolicy = iota
	// SkipFailedChunks drops failed chunks and formats the rest.
	SkipFailedChunks
)

func (p FailurePolicy) String() string {
	switch p {
	case AbortOnError:
		return "abort"
	case SkipFailedChunks:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseFailurePolicy maps "abort" or "skip" to a FailurePolicy.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return AbortOnError, nil
	case "skip":
		return SkipFailedChunks, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFailurePolicy, s)
	}
}

// Formatter drives chunks of text through a text generator.
type Formatter struct {
	generator      ai.TextGenerator
	maxChunkLength int
	workers        int
	policy         FailurePolicy
	promptTemplate string
	progress       io.Writer
	logger         *slog.Logger
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter) error

// WithWorkers sets how many chunks are formatted at once.
// Default is 1, which formats chunks strictly in order.
func WithWorkers(n int) FormatterOption {
	return func(f *Formatter) error {
		if n < 1 {
			n = 1
		}
		f.workers = n
		return nil
	}
}

// WithFailurePolicy sets what a failed chunk does. Default is AbortOnError.
func WithFailurePolicy(policy FailurePolicy) FormatterOption {
	return func(f *Formatter) error {
		if policy != AbortOnError && policy != SkipFailedChunks {
			return fmt.Errorf("%w: %d", ErrInvalidFailurePolicy, policy)
		}
		f.policy = policy
		return nil
	}
}

// WithPromptTemplate replaces the prompt wrapped around each chunk.
// The template must contain exactly one %s placeholder.
func WithPromptTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) error {
		if err := validatePromptTemplate(tmpl); err != nil {
			return err
		}
		f.promptTemplate = tmpl
		return nil
	}
}

// WithMaxChunkLength sets the chunk size limit in characters.
// Default is textproc.DefaultMaxChunkLength.
func WithMaxChunkLength(n int) FormatterOption {
	return func(f *Formatter) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", textproc.ErrInvalidChunkLength, n)
		}
		f.maxChunkLength = n
		return nil
	}
}

// WithProgress prints chunk progress to w.
func WithProgress(w io.Writer) FormatterOption {
	return func(f *Formatter) error {
		f.progress = w
		return nil
	}
}

// WithFormatterLogger sets a custom logger.
// Default is slog.Default() tagged with the component name.
func WithFormatterLogger(logger *slog.Logger) FormatterOption {
	return func(f *Formatter) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// NewFormatter creates a Formatter that sends prompts to generator.
func NewFormatter(generator ai.TextGenerator, opts ...FormatterOption) (*Formatter, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	f := &Formatter{
		generator:      generator,
		maxChunkLength: textproc.DefaultMaxChunkLength,
		workers:        1,
		policy:         AbortOnError,
		promptTemplate: DefaultPromptTemplate,
		logger:         slog.Default().With("component", "formatter"),
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Format reformats text and returns the assembled document.
func (f *Formatter) Format(ctx context.Context, text string) (string, error) {
	return f.FormatWithReport(ctx, text, nil)
}

// FormatWithReport is Format with per-chunk outcomes recorded in rep.
// Empty text returns "" without calling the generator.
func (f *Formatter) FormatWithReport(ctx context.Context, text string, rep *report.Report) (string, error) {
	if text == "" {
		return "", nil
	}

	chunks, err := textproc.Chunks(text, f.maxChunkLength)
	if err != nil {
		return "", err
	}

	formatted, err := f.FormatChunks(ctx, chunks, rep)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(formatted))
	for i, fc := range formatted {
		parts[i] = fc.Content
	}
	return strings.Join(parts, chunkSeparator), nil
}

// chunkResult is the outcome for one chunk, stored at the chunk's position.
type chunkResult struct {
	content string
	err     error
	done    bool
	// canceled is set when the run was cancelled while the chunk was in flight.
	canceled bool
}

// FormatChunks formats each chunk and returns the results in chunk order.
// Under SkipFailedChunks failed chunks are omitted from the result.
func (f *Formatter) FormatChunks(ctx context.Context, chunks []core.Chunk, rep *report.Report) ([]core.FormattedChunk, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	var tracker *report.ProgressTracker
	if f.progress != nil {
		tracker = report.NewProgressTracker(f.progress, "chunks", len(chunks), 1)
		tracker.Start()
		defer tracker.Finish()
	}

	var (
		results []chunkResult
		err     error
	)
	if f.workers > 1 && len(chunks) > 1 {
		results, err = f.formatConcurrent(ctx, chunks, tracker)
	} else {
		results, err = f.formatSequential(ctx, chunks, tracker)
	}
	if err != nil {
		return nil, err
	}

	return f.assemble(ctx, chunks, results, rep)
}

// formatSequential formats chunks one at a time in order.
func (f *Formatter) formatSequential(ctx context.Context, chunks []core.Chunk, tracker *report.ProgressTracker) ([]chunkResult, error) {
	results := make([]chunkResult, len(chunks))
	for i, chunk := range chunks {
		if ctx.Err() != nil {
			break
		}
		results[i] = f.formatOne(ctx, chunk)
		tracker.Done(results[i].err == nil)
		if results[i].err != nil && f.policy == AbortOnError {
			break
		}
	}
	return results, nil
}

// formatConcurrent fans chunks out over a bounded pool. Each worker writes
// only its own slot, so results need no lock beyond the final Wait.
func (f *Formatter) formatConcurrent(ctx context.Context, chunks []core.Chunk, tracker *report.ProgressTracker) ([]chunkResult, error) {
	pool, err := ants.NewPool(min(f.workers, len(chunks)))
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]chunkResult, len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		if runCtx.Err() != nil {
			break
		}
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if runCtx.Err() != nil {
				return
			}
			results[i] = f.formatOne(runCtx, chunk)
			tracker.Done(results[i].err == nil)
			if results[i].err != nil && f.policy == AbortOnError {
				cancel()
			}
		})
		if submitErr != nil {
			wg.Done()
			cancel()
			wg.Wait()
			return nil, fmt.Errorf("submitting chunk %d: %w", chunk.Index, submitErr)
		}
	}
	wg.Wait()
	return results, nil
}

// formatOne sends a single chunk to the generator.
func (f *Formatter) formatOne(ctx context.Context, chunk core.Chunk) chunkResult {
	f.logger.Debug("formatting chunk", "index", chunk.Index, "length", len(chunk.Text))
	out, err := f.generator.Generate(ctx, buildPrompt(f.promptTemplate, chunk.Text))
	return chunkResult{content: out, err: err, done: true, canceled: err != nil && ctx.Err() != nil}
}

// assemble turns indexed results into ordered output and applies the failure policy.
func (f *Formatter) assemble(ctx context.Context, chunks []core.Chunk, results []chunkResult, rep *report.Report) ([]core.FormattedChunk, error) {
	var (
		formatted []core.FormattedChunk
		firstErr  error
	)
	for i, res := range results {
		chunk := chunks[i]
		item := fmt.Sprintf("chunk %d", chunk.Index)
		switch {
		case res.done && res.err == nil:
			formatted = append(formatted, core.FormattedChunk{Index: chunk.Index, Content: res.content})
			rep.Succeeded(stepFormat, item)
		case res.done && !res.canceled:
			wrapped := fmt.Errorf("formatting chunk %d: %w", chunk.Index, res.err)
			if firstErr == nil {
				firstErr = wrapped
				if f.policy == AbortOnError {
					rep.Failed(stepFormat, item, res.err)
				}
			}
			if f.policy == SkipFailedChunks {
				f.logger.Warn("chunk skipped", "index", chunk.Index, "error", res.err)
				rep.Failed(stepFormat, item, res.err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.policy == AbortOnError && firstErr != nil {
		return nil, firstErr
	}
	if len(formatted) == 0 {
		if firstErr == nil {
			return nil, ErrAllChunksFailed
		}
		return nil, fmt.Errorf("%w: %w", ErrAllChunksFailed, firstErr)
	}
	return formatted, nil
}
