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


package ragingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/ragingest/acquisition"
	"github.com/poiesic/ragingest/ai"
	"github.com/poiesic/ragingest/ai/openai"
	"github.com/poiesic/ragingest/config"
	"github.com/poiesic/ragingest/refinement"
	"github.com/poiesic/ragingest/report"
	"github.com/poiesic/ragingest/scrape"
	"github.com/poiesic/ragingest/scrape/firecrawl"
	"github.com/poiesic/ragingest/scrape/readability"
	"github.com/poiesic/ragingest/storage"
	"github.com/poiesic/ragingest/storage/badger"
	"github.com/poiesic/ragingest/storage/s3"
)

// Runner wires the collaborators for a job and runs its stages.
type Runner struct {
	job       *config.Job
	secrets   *config.Secrets
	store     storage.ObjectStore
	ownsStore bool
	scraper   scrape.Scraper
	generator ai.TextGenerator
	progress  io.Writer
	logger    *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*runnerOptions)

type runnerOptions struct {
	store     storage.ObjectStore
	scraper   scrape.Scraper
	generator ai.TextGenerator
	progress  io.Writer
	logger    *slog.Logger
}

// WithObjectStore uses store instead of the backend named by the job.
// The caller keeps ownership; Close does not close it.
func WithObjectStore(store storage.ObjectStore) RunnerOption {
	return func(o *runnerOptions) {
		o.store = store
	}
}

// WithScraper uses scraper instead of the one named by the job.
func WithScraper(scraper scrape.Scraper) RunnerOption {
	return func(o *runnerOptions) {
		o.scraper = scraper
	}
}

// WithGenerator uses generator instead of the OpenAI generator.
func WithGenerator(generator ai.TextGenerator) RunnerOption {
	return func(o *runnerOptions) {
		o.generator = generator
	}
}

// WithProgress prints refinement progress to w.
func WithProgress(w io.Writer) RunnerOption {
	return func(o *runnerOptions) {
		o.progress = w
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(o *runnerOptions) {
		o.logger = logger
	}
}

// NewRunner validates job and opens its object store. A nil job runs
// config.DefaultJob. Secrets are checked by the stage that needs them.
func NewRunner(ctx context.Context, job *config.Job, secrets *config.Secrets, opts ...RunnerOption) (*Runner, error) {
	options := &runnerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if job == nil {
		job = config.DefaultJob()
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	if secrets == nil {
		secrets = &config.Secrets{}
	}

	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Runner{
		job:       job,
		secrets:   secrets,
		store:     options.store,
		scraper:   options.scraper,
		generator: options.generator,
		progress:  options.progress,
		logger:    logger,
	}

	if r.store == nil {
		store, err := openStore(ctx, job)
		if err != nil {
			return nil, err
		}
		r.store = store
		r.ownsStore = true
	}
	return r, nil
}

// openStore opens the object store named by the job.
func openStore(ctx context.Context, job *config.Job) (storage.ObjectStore, error) {
	switch job.Storage.Backend {
	case config.BackendBadger:
		store, err := badger.NewObjectStore(job.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("opening badger store %s: %w", job.Storage.Path, err)
		}
		return store, nil
	default:
		return s3.New(ctx,
			s3.WithRegion(job.Region),
			s3.WithEndpoint(job.Storage.Endpoint),
			s3.WithMaxAttempts(job.Storage.MaxAttempts),
		)
	}
}

// Close releases the object store if the runner opened it.
func (r *Runner) Close() error {
	if !r.ownsStore {
		return nil
	}
	if err := r.store.Close(); err != nil {
		r.logger.Error("error closing object store", "err", err)
		return err
	}
	return nil
}

// Acquire runs the acquisition stage.
func (r *Runner) Acquire(ctx context.Context) (*report.Report, error) {
	scraper, err := r.scraperForJob()
	if err != nil {
		return nil, err
	}

	a := r.job.Acquisition
	pipeline, err := acquisition.NewPipeline(r.store, scraper, acquisition.Config{
		Bucket:     r.job.Bucket,
		Region:     r.job.Region,
		LocalFile:  a.LocalFile,
		LocalKey:   a.LocalKey,
		URLs:       a.URLs,
		ScrapeFile: a.ScrapeFile,
		ScrapeKey:  a.ScrapeKey,
		KeepLocal:  a.KeepLocal,
	}, acquisition.WithLogger(r.logger.With("component", "acquisition")))
	if err != nil {
		return nil, err
	}
	return pipeline.Run(ctx)
}

// Refine runs the refinement stage.
func (r *Runner) Refine(ctx context.Context) (*report.Report, error) {
	generator, err := r.generatorForJob()
	if err != nil {
		return nil, err
	}

	rc := r.job.Refinement
	policy, err := refinement.ParseFailurePolicy(rc.FailurePolicy)
	if err != nil {
		return nil, err
	}

	formatterOpts := []refinement.FormatterOption{
		refinement.WithWorkers(rc.Workers),
		refinement.WithFailurePolicy(policy),
		refinement.WithMaxChunkLength(rc.MaxChunkLength),
		refinement.WithFormatterLogger(r.logger.With("component", "formatter")),
	}
	if rc.PromptTemplate != "" {
		formatterOpts = append(formatterOpts, refinement.WithPromptTemplate(rc.PromptTemplate))
	}
	if r.progress != nil {
		formatterOpts = append(formatterOpts, refinement.WithProgress(r.progress))
	}

	formatter, err := refinement.NewFormatter(generator, formatterOpts...)
	if err != nil {
		return nil, err
	}

	pipeline, err := refinement.NewPipeline(r.store, formatter, refinement.Config{
		Bucket:     r.job.Bucket,
		SourceKey:  rc.SourceKey,
		OutputKey:  rc.OutputKey,
		OutputFile: rc.OutputFile,
		KeepLocal:  rc.KeepLocal,
	}, refinement.WithLogger(r.logger.With("component", "refinement")))
	if err != nil {
		return nil, err
	}
	return pipeline.Run(ctx)
}

// scraperForJob returns the configured scraper, building the job's default
// on first use. The Firecrawl key is required here, before any scraping.
func (r *Runner) scraperForJob() (scrape.Scraper, error) {
	if r.scraper != nil {
		return r.scraper, nil
	}

	a := r.job.Acquisition
	switch a.Scraper {
	case config.ScraperReadability:
		opts := []readability.Option{readability.WithIgnoreRobots(a.IgnoreRobots)}
		if a.UserAgent != "" {
			opts = append(opts, readability.WithUserAgent(a.UserAgent))
		}
		if a.Timeout > 0 {
			opts = append(opts, readability.WithTimeout(a.Timeout))
		}
		r.scraper = readability.New(opts...)
	default:
		key, err := r.secrets.RequireFirecrawl()
		if err != nil {
			return nil, err
		}
		opts := []firecrawl.Option{}
		if a.FirecrawlURL != "" {
			opts = append(opts, firecrawl.WithBaseURL(a.FirecrawlURL))
		}
		if a.Timeout > 0 {
			opts = append(opts, firecrawl.WithTimeout(a.Timeout))
		}
		scraper, err := firecrawl.New(key, opts...)
		if err != nil {
			return nil, err
		}
		r.scraper = scraper
	}
	return r.scraper, nil
}

// generatorForJob returns the configured generator, building an OpenAI
// generator on first use.
func (r *Runner) generatorForJob() (ai.TextGenerator, error) {
	if r.generator != nil {
		return r.generator, nil
	}

	key, err := r.secrets.RequireOpenAI()
	if err != nil {
		return nil, err
	}
	rc := r.job.Refinement
	cfg := ai.NewConfig(
		ai.WithHost(rc.Host),
		ai.WithModel(rc.Model),
		ai.WithToken(key),
		ai.WithTemperature(rc.Temperature),
	)
	generator, err := openai.NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	r.generator = generator
	return generator, nil
}
