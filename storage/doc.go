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


// Package storage provides the object-storage abstraction shared by the
// acquisition and refinement pipelines.
//
// Pipelines depend on the ObjectStore interface only. Two backends exist:
//
//   - storage/s3: Amazon S3 or any S3-compatible server (MinIO, LocalStack)
//   - storage/badger: a local BadgerDB-backed store for offline runs and tests
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.ObjectStore interface so that
// pipelines never couple to a backend:
//
//	store, err := s3.New(ctx, s3.WithRegion("us-west-2"))
//	store, err := badger.NewObjectStore("/var/lib/ragingest")
//
// # Usage
//
//	status, err := store.CreateBucket(ctx, "ragproject-55612", "us-west-2")
//	err = store.PutObject(ctx, "rental_policy_text.txt", "ragproject-55612", "policy_documents/rental_policy_text.txt")
//	data, err := store.GetObject(ctx, "ragproject-55612", "policy_documents/rental_policy_text.txt")
//
// Use in tests with in-memory storage:
//
//	store, err := badger.NewMemoryObjectStore()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// # Errors
//
// Backends wrap failures in *core.Error so callers can tell transient
// failures from fatal ones. Sentinel errors (ErrNotFound, ErrBucketNotFound)
// stay reachable with errors.Is.
package storage
