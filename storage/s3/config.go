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


package s3

// Config holds the client settings for an S3 store.
type Config struct {
	// Region is the default region for the client and for new buckets.
	Region string
	// Endpoint overrides the service endpoint. Empty uses AWS.
	Endpoint string
	// MaxAttempts caps SDK retries per request. Zero keeps the SDK default.
	MaxAttempts int
}

// Option configures a Config.
type Option func(*Config)

// WithRegion sets the client region.
func WithRegion(region string) Option {
	return func(c *Config) {
		c.Region = region
	}
}

// WithEndpoint points the client at an S3-compatible server.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithMaxAttempts caps the number of attempts the SDK makes per request.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}
