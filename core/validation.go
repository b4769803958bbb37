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


package core

import (
	"fmt"
	"net/url"
)

const maxObjectKeyBytes = 1024

// ValidateBucketName validates a bucket name against S3 naming rules.
//
// Validation rules:
//   - 3 to 63 characters
//   - lowercase letters, digits, dots and hyphens only
//   - must start and end with a letter or digit
func ValidateBucketName(name string) error {
	if len(name) < 3 || len(name) > 63 {
		return fmt.Errorf("%w: %q must be 3-63 characters", ErrInvalidBucketName, name)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '.' || c == '-':
			if i == 0 || i == len(name)-1 {
				return fmt.Errorf("%w: %q must start and end with a letter or digit", ErrInvalidBucketName, name)
			}
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidBucketName, name, c)
		}
	}
	return nil
}

// ValidateObjectKey validates that an object key is non-empty and at most 1024 bytes.
func ValidateObjectKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key is empty", ErrInvalidObjectKey)
	}
	if len(key) > maxObjectKeyBytes {
		return fmt.Errorf("%w: key is %d bytes", ErrInvalidObjectKey, len(key))
	}
	return nil
}

// ValidateURL validates that rawURL is an absolute http or https URL.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q has scheme %q", ErrInvalidURL, rawURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidURL, rawURL)
	}
	return nil
}
