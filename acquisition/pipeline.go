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


package acquisition

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/ragingest/core"
	"github.com/poiesic/ragingest/report"
	"github.com/poiesic/ragingest/scrape"
	"github.com/poiesic/ragingest/scratch"
	"github.com/poiesic/ragingest/storage"
)

// Step names recorded in the report.
const (
	StepCreateBucket  = "create bucket"
	StepUploadLocal   = "upload local file"
	StepUploadScrape  = "upload scrape file"
	StepRemoveScratch = "remove scratch file"
	stageName         = "acquisition"
)

// Config describes what the acquisition stage fetches and where it stores it.
type Config struct {
	Bucket string
	Region string

	// LocalFile is uploaded as LocalKey. Empty skips the upload.
	LocalFile string
	LocalKey  string

	URLs       []string
	ScrapeFile string
	ScrapeKey  string

	// KeepLocal leaves ScrapeFile on disk after the run.
	KeepLocal bool
}

// Pipeline runs the acquisition stage.
type Pipeline struct {
	store    storage.ObjectStore
	acquirer *Acquirer
	cfg      Config
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default() tagged with the component name.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an acquisition pipeline.
func NewPipeline(store storage.ObjectStore, scraper scrape.Scraper, cfg Config, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrObjectStoreRequired
	}
	if scraper == nil {
		return nil, ErrScraperRequired
	}

	p := &Pipeline{
		store:  store,
		cfg:    cfg,
		logger: slog.Default().With("component", stageName),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	acquirer, err := NewAcquirer(scraper, p.logger)
	if err != nil {
		return nil, err
	}
	p.acquirer = acquirer
	return p, nil
}

// Run executes the stage. The returned report is never nil. A non-nil error
// means the stage stopped early; item failures are only in the report.
func (p *Pipeline) Run(ctx context.Context) (*report.Report, error) {
	rep := report.New(stageName)
	defer rep.Finish()

	status, err := p.store.CreateBucket(ctx, p.cfg.Bucket, p.cfg.Region)
	if err != nil {
		rep.Failed(StepCreateBucket, p.cfg.Bucket, err)
		return rep, fmt.Errorf("creating bucket %s: %w", p.cfg.Bucket, err)
	}
	rep.Succeeded(StepCreateBucket, p.cfg.Bucket)
	p.logger.Info("bucket ready", "bucket", p.cfg.Bucket, "status", status)

	if p.cfg.LocalFile != "" {
		p.upload(ctx, rep, StepUploadLocal, p.cfg.LocalFile, p.cfg.LocalKey)
	}

	defer func() {
		if err := scratch.Release(p.cfg.ScrapeFile, p.cfg.KeepLocal); err != nil {
			p.logger.Warn("scratch file not removed", "path", p.cfg.ScrapeFile, "error", err)
			rep.Failed(StepRemoveScratch, p.cfg.ScrapeFile, err)
			return
		}
		if !p.cfg.KeepLocal {
			p.logger.Info("temporary file removed", "path", p.cfg.ScrapeFile)
		}
	}()

	written, err := p.scrapeToFile(ctx, rep)
	if err != nil {
		return rep, err
	}
	p.logger.Info("crawled content saved", "path", p.cfg.ScrapeFile, "documents", written)

	p.upload(ctx, rep, StepUploadScrape, p.cfg.ScrapeFile, p.cfg.ScrapeKey)
	return rep, nil
}

// scrapeToFile writes every scraped document to the scratch file.
func (p *Pipeline) scrapeToFile(ctx context.Context, rep *report.Report) (int, error) {
	f, err := scratch.Create(p.cfg.ScrapeFile)
	if err != nil {
		return 0, err
	}

	w := bufio.NewWriter(f)
	written, err := p.acquirer.Acquire(ctx, p.cfg.URLs, w, rep)
	if err != nil {
		f.Close()
		return written, err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return written, fmt.Errorf("writing %s: %w", p.cfg.ScrapeFile, err)
	}
	if err := f.Close(); err != nil {
		return written, fmt.Errorf("closing %s: %w", p.cfg.ScrapeFile, err)
	}
	return written, nil
}

// upload stores a local file, recording the outcome as an item result.
func (p *Pipeline) upload(ctx context.Context, rep *report.Report, step, localPath, key string) {
	ref := core.ObjectRef{Bucket: p.cfg.Bucket, Key: key}
	if err := p.store.PutObject(ctx, localPath, p.cfg.Bucket, key); err != nil {
		p.logger.Warn("upload failed", "path", localPath, "object", ref, "error", err)
		rep.Failed(step, ref.String(), err)
		return
	}
	rep.Succeeded(step, ref.String())
	p.logger.Info("uploaded", "path", localPath, "object", ref)
}
