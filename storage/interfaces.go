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


package storage

import (
	"context"

	"github.com/poiesic/ragingest/core"
)

// ObjectStore is the object-storage collaborator shared by both pipelines.
type ObjectStore interface {
	// CreateBucket creates a bucket in region (empty for the backend default).
	// A bucket that already exists and belongs to the caller is not an error:
	// it returns core.BucketAlreadyOwned.
	CreateBucket(ctx context.Context, name, region string) (core.BucketStatus, error)

	// PutObject uploads the local file at localPath as bucket/key,
	// replacing any existing object.
	PutObject(ctx context.Context, localPath, bucket, key string) error

	// GetObject returns the content of bucket/key.
	// Returns ErrNotFound if the object doesn't exist.
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)

	// Close releases resources held by the store.
	Close() error
}
