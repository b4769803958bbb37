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


package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/ragingest/core"
	"github.com/poiesic/ragingest/storage"
)

// ObjectStore is a storage.ObjectStore kept in a local BadgerDB database.
// Each object is two entries: the body under its object key and an encoded
// core.ObjectInfo under its info key, written in one transaction.
type ObjectStore struct {
	backend *Backend
}

var _ storage.ObjectStore = (*ObjectStore)(nil)

// NewObjectStore opens (or creates) a badger object store rooted at path.
func NewObjectStore(path string) (*ObjectStore, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &ObjectStore{backend: backend}, nil
}

// Close closes the underlying database. Closing twice is a no-op.
func (s *ObjectStore) Close() error {
	if s.backend.IsClosed() {
		return nil
	}
	return s.backend.Close()
}

// requireBucket maps a missing bucket record to storage.ErrBucketNotFound.
func requireBucket(txn *badger.Txn, bucket string) error {
	_, err := txn.Get(makeBucketKey(bucket))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", storage.ErrBucketNotFound, bucket)
	}
	return err
}

// CreateBucket records a bucket. Region has no meaning locally and is ignored.
func (s *ObjectStore) CreateBucket(ctx context.Context, name, region string) (core.BucketStatus, error) {
	if err := core.ValidateBucketName(name); err != nil {
		return 0, err
	}

	status := core.BucketCreated
	err := s.backend.Update(func(txn *badger.Txn) error {
		err := requireBucket(txn, name)
		if err == nil {
			status = core.BucketAlreadyOwned
			return nil
		}
		if !errors.Is(err, storage.ErrBucketNotFound) {
			return err
		}
		return txn.Set(makeBucketKey(name), []byte(time.Now().UTC().Format(time.RFC3339)))
	})
	if err != nil {
		return 0, err
	}

	s.backend.logger.Debug("bucket ready", "bucket", name, "status", status)
	return status, nil
}

// PutObject stores the content of localPath as bucket/key, replacing any
// existing object.
func (s *ObjectStore) PutObject(ctx context.Context, localPath, bucket, key string) error {
	if err := core.ValidateObjectKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", localPath, err)
	}
	info := &core.ObjectInfo{
		Bucket:   bucket,
		Key:      key,
		Size:     int64(len(body)),
		Checksum: core.ChecksumOf(body),
		StoredAt: time.Now().UTC(),
	}

	err = s.backend.Update(func(txn *badger.Txn) error {
		if err := requireBucket(txn, bucket); err != nil {
			return err
		}
		if err := txn.Set(makeObjectKey(bucket, key), body); err != nil {
			return err
		}
		return txn.Set(makeObjectInfoKey(bucket, key), storage.MarshalObjectInfo(info))
	})
	if err != nil {
		return err
	}

	s.backend.logger.Debug("object stored",
		"object", core.ObjectRef{Bucket: bucket, Key: key},
		"size", info.Size,
		"checksum", info.Checksum)
	return nil
}

// GetObject returns the content of bucket/key.
func (s *ObjectStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := core.ValidateObjectKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var body []byte
	err := s.backend.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeObjectKey(bucket, key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		body, err = item.ValueCopy(nil)
		return err
	})
	return body, err
}

// Stat returns the metadata recorded for bucket/key.
func (s *ObjectStore) Stat(ctx context.Context, bucket, key string) (*core.ObjectInfo, error) {
	var info *core.ObjectInfo
	err := s.backend.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeObjectInfoKey(bucket, key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			info, err = storage.UnmarshalObjectInfo(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// List returns metadata for every object in bucket, ordered by key.
func (s *ObjectStore) List(ctx context.Context, bucket string) ([]*core.ObjectInfo, error) {
	var infos []*core.ObjectInfo
	err := s.backend.View(func(txn *badger.Txn) error {
		if err := requireBucket(txn, bucket); err != nil {
			return err
		}

		prefix := makeObjectInfoPrefix(bucket)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			info, err := storage.UnmarshalObjectInfo(val)
			if err != nil {
				return err
			}
			infos = append(infos, info)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}
