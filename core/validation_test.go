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
	"errors"
	"strings"
	"testing"
)

func TestValidateBucketName(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		wantErr error
	}{
		{name: "valid bucket", bucket: "ragproject-55612", wantErr: nil},
		{name: "valid with dots", bucket: "my.bucket.name", wantErr: nil},
		{name: "minimum length", bucket: "abc", wantErr: nil},
		{name: "too short", bucket: "ab", wantErr: ErrInvalidBucketName},
		{name: "too long", bucket: strings.Repeat("a", 64), wantErr: ErrInvalidBucketName},
		{name: "uppercase", bucket: "RagProject", wantErr: ErrInvalidBucketName},
		{name: "underscore", bucket: "rag_project", wantErr: ErrInvalidBucketName},
		{name: "leading hyphen", bucket: "-ragproject", wantErr: ErrInvalidBucketName},
		{name: "trailing dot", bucket: "ragproject.", wantErr: ErrInvalidBucketName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBucketName(tt.bucket)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateBucketName() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBucketName() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateObjectKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "nested key", key: "policy_documents/policy_document.pdf", wantErr: nil},
		{name: "empty key", key: "", wantErr: ErrInvalidObjectKey},
		{name: "max length", key: strings.Repeat("k", 1024), wantErr: nil},
		{name: "too long", key: strings.Repeat("k", 1025), wantErr: ErrInvalidObjectKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectKey(tt.key)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateObjectKey() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateObjectKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https", url: "https://www.apartments.com/amherst-manor-apartments-williamsville-ny/6qjx6qv/", wantErr: false},
		{name: "http with port", url: "http://127.0.0.1:8080/page", wantErr: false},
		{name: "relative", url: "/apartments/ny", wantErr: true},
		{name: "ftp scheme", url: "ftp://example.com/file", wantErr: true},
		{name: "no host", url: "https://", wantErr: true},
		{name: "unparseable", url: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr && !errors.Is(err, ErrInvalidURL) {
				t.Errorf("ValidateURL() error = %v, want ErrInvalidURL", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateURL() unexpected error = %v", err)
			}
		})
	}
}
