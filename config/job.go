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
	"fmt"
	"os"
	"time"

	"github.com/poiesic/ragingest/core"
	"gopkg.in/yaml.v2"
)

// Storage backends.
const (
	BackendS3     = "s3"
	BackendBadger = "badger"
)

// Scrapers.
const (
	ScraperFirecrawl   = "firecrawl"
	ScraperReadability = "readability"
)

// Failure policies for refinement.
const (
	FailurePolicyAbort = "abort"
	FailurePolicySkip  = "skip"
)

// Job describes one ingestion run.
type Job struct {
	Bucket      string            `yaml:"bucket"`
	Region      string            `yaml:"region"`
	Storage     StorageConfig     `yaml:"storage"`
	Acquisition AcquisitionConfig `yaml:"acquisition"`
	Refinement  RefinementConfig  `yaml:"refinement"`
}

// StorageConfig selects and configures the object store.
type StorageConfig struct {
	// Backend is "s3" or "badger".
	Backend string `yaml:"backend"`
	// Endpoint overrides the S3 endpoint for compatible servers.
	Endpoint string `yaml:"endpoint"`
	// Path is the badger database directory.
	Path string `yaml:"path"`
	// MaxAttempts caps S3 SDK attempts per request. Zero keeps the SDK default.
	MaxAttempts int `yaml:"max_attempts"`
}

// AcquisitionConfig configures the acquisition stage.
type AcquisitionConfig struct {
	// Scraper is "firecrawl" or "readability".
	Scraper      string        `yaml:"scraper"`
	FirecrawlURL string        `yaml:"firecrawl_url"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
	IgnoreRobots bool          `yaml:"ignore_robots"`

	// LocalFile is uploaded as LocalKey. Empty skips the upload.
	LocalFile string `yaml:"local_file"`
	LocalKey  string `yaml:"local_key"`

	URLs       []string `yaml:"urls"`
	ScrapeFile string   `yaml:"scrape_file"`
	ScrapeKey  string   `yaml:"scrape_key"`
	KeepLocal  bool     `yaml:"keep_local"`
}

// RefinementConfig configures the refinement stage.
type RefinementConfig struct {
	SourceKey      string  `yaml:"source_key"`
	OutputKey      string  `yaml:"output_key"`
	OutputFile     string  `yaml:"output_file"`
	MaxChunkLength int     `yaml:"max_chunk_length"`
	Workers        int     `yaml:"workers"`
	FailurePolicy  string  `yaml:"failure_policy"`
	Model          string  `yaml:"model"`
	Host           string  `yaml:"host"`
	Temperature    float64 `yaml:"temperature"`
	PromptTemplate string  `yaml:"prompt_template"`
	KeepLocal      bool    `yaml:"keep_local"`
}

// DefaultJob returns the rental policy ingestion job.
func DefaultJob() *Job {
	return &Job{
		Bucket: "ragproject-55612",
		Region: "us-west-2",
		Storage: StorageConfig{
			Backend: BackendS3,
			Path:    "ragingest-data",
		},
		Acquisition: AcquisitionConfig{
			Scraper:      ScraperFirecrawl,
			FirecrawlURL: "https://api.firecrawl.dev",
			Timeout:      2 * time.Minute,
			LocalFile:    "Lease policy.docx",
			LocalKey:     "policy_documents/policy_document.pdf",
			URLs: []string{
				"https://www.apartments.com/amherst-manor-apartments-williamsville-ny/6qjx6qv/",
				"https://www.zillow.com/apartments/williamsville-ny/amherst-manor-apartments/5j8y5p/",
				"https://www.rentcafe.com/apartments/ny/amherst/amherst-manor-apartments/default.aspx",
			},
			ScrapeFile: "rental_policy_text.txt",
			ScrapeKey:  "policy_documents/rental_policy_text.txt",
		},
		Refinement: RefinementConfig{
			SourceKey:      "policy_documents/rental_policy_text.txt",
			OutputKey:      "policy_documents/processed-text-webfile.txt",
			OutputFile:     "formatted_policy_text.txt",
			MaxChunkLength: 8000,
			Workers:        1,
			FailurePolicy:  FailurePolicyAbort,
			Model:          "gpt-4",
			Host:           "https://api.openai.com/v1",
			Temperature:    0.7,
		},
	}
}

// LoadJob reads a YAML job file and overlays it on DefaultJob.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	job := DefaultJob()
	if err := yaml.UnmarshalStrict(data, job); err != nil {
		return nil, fmt.Errorf("parsing job %s: %w", path, err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// Validate checks the job for settings that would fail at run time.
func (j *Job) Validate() error {
	if err := core.ValidateBucketName(j.Bucket); err != nil {
		return fmt.Errorf("%w: bucket %q: %w", ErrInvalidJob, j.Bucket, err)
	}

	if j.Storage.MaxAttempts < 0 {
		return fmt.Errorf("%w: storage.max_attempts must not be negative", ErrInvalidJob)
	}
	switch j.Storage.Backend {
	case BackendS3:
	case BackendBadger:
		if j.Storage.Path == "" {
			return fmt.Errorf("%w: storage.path is required for the badger backend", ErrInvalidJob)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidJob, j.Storage.Backend)
	}

	a := j.Acquisition
	switch a.Scraper {
	case ScraperFirecrawl, ScraperReadability:
	default:
		return fmt.Errorf("%w: unknown scraper %q", ErrInvalidJob, a.Scraper)
	}
	if a.LocalFile != "" {
		if err := core.ValidateObjectKey(a.LocalKey); err != nil {
			return fmt.Errorf("%w: acquisition.local_key: %w", ErrInvalidJob, err)
		}
	}
	for _, u := range a.URLs {
		if err := core.ValidateURL(u); err != nil {
			return fmt.Errorf("%w: acquisition.urls: %q: %w", ErrInvalidJob, u, err)
		}
	}
	if a.ScrapeFile == "" {
		return fmt.Errorf("%w: acquisition.scrape_file is required", ErrInvalidJob)
	}
	if err := core.ValidateObjectKey(a.ScrapeKey); err != nil {
		return fmt.Errorf("%w: acquisition.scrape_key: %w", ErrInvalidJob, err)
	}
	if a.Timeout < 0 {
		return fmt.Errorf("%w: acquisition.timeout must not be negative", ErrInvalidJob)
	}

	r := j.Refinement
	if err := core.ValidateObjectKey(r.SourceKey); err != nil {
		return fmt.Errorf("%w: refinement.source_key: %w", ErrInvalidJob, err)
	}
	if err := core.ValidateObjectKey(r.OutputKey); err != nil {
		return fmt.Errorf("%w: refinement.output_key: %w", ErrInvalidJob, err)
	}
	if r.OutputFile == "" {
		return fmt.Errorf("%w: refinement.output_file is required", ErrInvalidJob)
	}
	if r.MaxChunkLength <= 0 {
		return fmt.Errorf("%w: refinement.max_chunk_length must be positive", ErrInvalidJob)
	}
	if r.Workers < 1 {
		return fmt.Errorf("%w: refinement.workers must be at least 1", ErrInvalidJob)
	}
	switch r.FailurePolicy {
	case FailurePolicyAbort, FailurePolicySkip:
	default:
		return fmt.Errorf("%w: unknown failure policy %q", ErrInvalidJob, r.FailurePolicy)
	}
	return nil
}
