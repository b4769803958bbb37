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
	"log/slog"

	"github.com/poiesic/ragingest/core"
	"github.com/poiesic/ragingest/report"
	"github.com/poiesic/ragingest/scratch"
	"github.com/poiesic/ragingest/storage"
	"github.com/poiesic/ragingest/textproc"
)

// Step names recorded in the report.
const (
	StepDownload      = "download source"
	StepWriteOutput   = "write output file"
	StepUploadOutput  = "upload output"
	StepRemoveScratch = "remove scratch file"
	stageName         = "refinement"
)

// Config describes where the refinement stage reads from and writes to.
type Config struct {
	Bucket     string
	SourceKey  string
	OutputKey  string
	OutputFile string

	// KeepLocal leaves OutputFile on disk after the run.
	KeepLocal bool
}

// Pipeline runs the refinement stage.
type Pipeline struct {
	store     storage.ObjectStore
	formatter *Formatter
	cfg       Config
	logger    *slog.Logger
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

// NewPipeline creates a refinement pipeline.
func NewPipeline(store storage.ObjectStore, formatter *Formatter, cfg Config, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrObjectStoreRequired
	}
	if formatter == nil {
		return nil, ErrFormatterRequired
	}

	p := &Pipeline{
		store:     store,
		formatter: formatter,
		cfg:       cfg,
		logger:    slog.Default().With("component", stageName),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Run executes the stage. The returned report is never nil. Every step of
// refinement is fatal: a failure stops the stage and is returned.
func (p *Pipeline) Run(ctx context.Context) (*report.Report, error) {
	rep := report.New(stageName)
	defer rep.Finish()

	source := core.ObjectRef{Bucket: p.cfg.Bucket, Key: p.cfg.SourceKey}
	data, err := p.store.GetObject(ctx, p.cfg.Bucket, p.cfg.SourceKey)
	if err != nil {
		rep.Failed(StepDownload, source.String(), err)
		return rep, fmt.Errorf("downloading %s: %w", source, err)
	}
	rep.Succeeded(StepDownload, source.String())

	text := textproc.Clean(textproc.Decode(data))
	p.logger.Info("data loaded and cleaned", "object", source, "raw_bytes", len(data), "clean_bytes", len(text))

	formatted, err := p.formatter.FormatWithReport(ctx, text, rep)
	if err != nil {
		return rep, err
	}
	p.logger.Info("text formatted", "bytes", len(formatted))

	defer func() {
		if err := scratch.Release(p.cfg.OutputFile, p.cfg.KeepLocal); err != nil {
			p.logger.Warn("scratch file not removed", "path", p.cfg.OutputFile, "error", err)
			rep.Failed(StepRemoveScratch, p.cfg.OutputFile, err)
			return
		}
		if !p.cfg.KeepLocal {
			p.logger.Info("temporary file removed", "path", p.cfg.OutputFile)
		}
	}()

	if err := scratch.WriteFile(p.cfg.OutputFile, []byte(formatted)); err != nil {
		rep.Failed(StepWriteOutput, p.cfg.OutputFile, err)
		return rep, err
	}
	rep.Succeeded(StepWriteOutput, p.cfg.OutputFile)

	output := core.ObjectRef{Bucket: p.cfg.Bucket, Key: p.cfg.OutputKey}
	if err := p.store.PutObject(ctx, p.cfg.OutputFile, p.cfg.Bucket, p.cfg.OutputKey); err != nil {
		rep.Failed(StepUploadOutput, output.String(), err)
		return rep, fmt.Errorf("uploading %s: %w", output, err)
	}
	rep.Succeeded(StepUploadOutput, output.String())
	p.logger.Info("formatted text uploaded", "object", output)

	return rep, nil
}
