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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/poiesic/ragingest"
	"github.com/poiesic/ragingest/config"
	"github.com/poiesic/ragingest/core"
	"github.com/poiesic/ragingest/report"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ragingest",
		Usage: "Acquire source documents and refine them into RAG-ready text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "job",
				Aliases: []string{"j"},
				Usage:   "Path to a YAML job file (defaults are used when omitted)",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file holding API keys",
				Value: ".env",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Abort the run after this long (0 disables)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "acquire",
				Usage:  "Scrape the job's URLs and upload source artifacts",
				Action: acquireCommand,
				Flags:  acquireFlags(),
			},
			{
				Name:   "refine",
				Usage:  "Download scraped text, reformat it with the LLM, and upload the result",
				Action: refineCommand,
				Flags:  refineFlags(),
			},
			{
				Name:   "run",
				Usage:  "Run acquire then refine",
				Action: runCommand,
				Flags:  append(acquireFlags(), refineFlags()...),
			},
		},
	}
}

func acquireFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "scraper",
			Usage: "Scraper to use (firecrawl, readability)",
		},
		&cli.BoolFlag{
			Name:  "keep-local",
			Usage: "Keep scratch files after upload",
		},
	}
}

func refineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Number of chunks formatted concurrently",
		},
		&cli.IntFlag{
			Name:  "max-chunk-length",
			Usage: "Maximum characters per chunk sent to the LLM",
		},
		&cli.StringFlag{
			Name:  "failure-policy",
			Usage: "Chunk failure policy (abort, skip)",
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: "Chat model name",
		},
	}
}

func acquireCommand(c *cli.Context) error {
	return withRunner(c, func(ctx context.Context, runner *ragingest.Runner) error {
		rep, err := runner.Acquire(ctx)
		return logStage("acquisition", rep, err)
	})
}

func refineCommand(c *cli.Context) error {
	return withRunner(c, func(ctx context.Context, runner *ragingest.Runner) error {
		rep, err := runner.Refine(ctx)
		return logStage("refinement", rep, err)
	})
}

func runCommand(c *cli.Context) error {
	return withRunner(c, func(ctx context.Context, runner *ragingest.Runner) error {
		rep, err := runner.Acquire(ctx)
		if err := logStage("acquisition", rep, err); err != nil {
			return err
		}
		rep, err = runner.Refine(ctx)
		return logStage("refinement", rep, err)
	})
}

// withRunner loads configuration, builds a runner, and calls fn with a
// context canceled on SIGINT, SIGTERM, or the --timeout deadline.
func withRunner(c *cli.Context, fn func(context.Context, *ragingest.Runner) error) error {
	if err := config.LoadEnvFile(c.String("env-file")); err != nil {
		return err
	}
	secrets := config.SecretsFromEnv(nil)

	job, err := loadJob(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout := c.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	slog.Debug("starting run",
		"bucket", job.Bucket,
		"backend", job.Storage.Backend,
		"scraper", job.Acquisition.Scraper,
		"urls", len(job.Acquisition.URLs))

	runner, err := ragingest.NewRunner(ctx, job, secrets, ragingest.WithProgress(c.App.ErrWriter))
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}
	defer runner.Close()

	return fn(ctx, runner)
}

// loadJob reads the job file, if any, and applies command-line overrides.
func loadJob(c *cli.Context) (*config.Job, error) {
	job := config.DefaultJob()
	if path := c.String("job"); path != "" {
		loaded, err := config.LoadJob(path)
		if err != nil {
			return nil, err
		}
		job = loaded
	}

	if c.IsSet("scraper") {
		job.Acquisition.Scraper = c.String("scraper")
	}
	if c.IsSet("keep-local") {
		job.Acquisition.KeepLocal = c.Bool("keep-local")
		job.Refinement.KeepLocal = c.Bool("keep-local")
	}
	if c.IsSet("workers") {
		job.Refinement.Workers = c.Int("workers")
	}
	if c.IsSet("max-chunk-length") {
		job.Refinement.MaxChunkLength = c.Int("max-chunk-length")
	}
	if c.IsSet("failure-policy") {
		job.Refinement.FailurePolicy = c.String("failure-policy")
	}
	if c.IsSet("model") {
		job.Refinement.Model = c.String("model")
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// logStage logs the stage report once and passes the stage error through.
func logStage(stage string, rep *report.Report, err error) error {
	rep.Log(slog.Default())
	if err == nil {
		return nil
	}
	if core.IsTransient(err) {
		slog.Warn("stage failed on a transient error; rerun the command", "stage", stage)
	}
	return fmt.Errorf("%s failed: %w", stage, err)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
