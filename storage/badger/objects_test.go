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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/ragingest/core"
	"github.com/poiesic/ragingest/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ObjectStore {
	t.Helper()
	store, err := NewMemoryObjectStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCreateBucket_Twice(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	status, err := store.CreateBucket(ctx, "ragproject-55612", "us-west-2")
	require.NoError(t, err)
	assert.Equal(t, core.BucketCreated, status)

	status, err = store.CreateBucket(ctx, "ragproject-55612", "us-west-2")
	require.NoError(t, err)
	assert.Equal(t, core.BucketAlreadyOwned, status)
}

func TestCreateBucket_InvalidName(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateBucket(context.Background(), "Bad_Bucket", "")
	assert.ErrorIs(t, err, core.ErrInvalidBucketName)
}

func TestPutGetObject(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateBucket(ctx, "docs", "")
	require.NoError(t, err)

	path := writeTempFile(t, "lease terms")
	require.NoError(t, store.PutObject(ctx, path, "docs", "policy_documents/a.txt"))

	body, err := store.GetObject(ctx, "docs", "policy_documents/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "lease terms", string(body))

	t.Run("overwrite replaces content", func(t *testing.T) {
		path := writeTempFile(t, "new terms")
		require.NoError(t, store.PutObject(ctx, path, "docs", "policy_documents/a.txt"))

		body, err := store.GetObject(ctx, "docs", "policy_documents/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "new terms", string(body))
	})
}

func TestPutObject_Errors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateBucket(ctx, "docs", "")
	require.NoError(t, err)

	t.Run("missing bucket", func(t *testing.T) {
		path := writeTempFile(t, "x")
		err := store.PutObject(ctx, path, "nope", "a.txt")
		assert.ErrorIs(t, err, storage.ErrBucketNotFound)
	})

	t.Run("missing local file", func(t *testing.T) {
		err := store.PutObject(ctx, filepath.Join(t.TempDir(), "absent.txt"), "docs", "a.txt")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty key", func(t *testing.T) {
		path := writeTempFile(t, "x")
		err := store.PutObject(ctx, path, "docs", "")
		assert.ErrorIs(t, err, core.ErrInvalidObjectKey)
	})
}

func TestGetObject_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetObject(context.Background(), "docs", "missing.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStat(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateBucket(ctx, "docs", "")
	require.NoError(t, err)

	before := time.Now().UTC().Add(-time.Second)
	path := writeTempFile(t, "hello world")
	require.NoError(t, store.PutObject(ctx, path, "docs", "a.txt"))

	info, err := store.Stat(ctx, "docs", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "docs", info.Bucket)
	assert.Equal(t, "a.txt", info.Key)
	assert.Equal(t, int64(11), info.Size)
	assert.Equal(t, core.ChecksumOf([]byte("hello world")), info.Checksum)
	assert.True(t, info.StoredAt.After(before))

	_, err = store.Stat(ctx, "docs", "b.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, bucket := range []string{"docs", "docs-archive"} {
		_, err := store.CreateBucket(ctx, bucket, "")
		require.NoError(t, err)
	}
	for _, key := range []string{"b.txt", "a.txt"} {
		require.NoError(t, store.PutObject(ctx, writeTempFile(t, key), "docs", key))
	}
	require.NoError(t, store.PutObject(ctx, writeTempFile(t, "z"), "docs-archive", "z.txt"))

	infos, err := store.List(ctx, "docs")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a.txt", infos[0].Key)
	assert.Equal(t, "b.txt", infos[1].Key)

	_, err = store.List(ctx, "unknown")
	assert.ErrorIs(t, err, storage.ErrBucketNotFound)
}

func TestObjectStore_Persistent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewObjectStore(dir)
	require.NoError(t, err)
	_, err = store.CreateBucket(ctx, "docs", "")
	require.NoError(t, err)
	require.NoError(t, store.PutObject(ctx, writeTempFile(t, "kept"), "docs", "a.txt"))
	require.NoError(t, store.Close())

	store, err = NewObjectStore(dir)
	require.NoError(t, err)
	defer store.Close()

	body, err := store.GetObject(ctx, "docs", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "kept", string(body))

	status, err := store.CreateBucket(ctx, "docs", "")
	require.NoError(t, err)
	assert.Equal(t, core.BucketAlreadyOwned, status)
}

func TestObjectStore_Closed(t *testing.T) {
	store, err := NewMemoryObjectStore()
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.GetObject(context.Background(), "docs", "a.txt")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
