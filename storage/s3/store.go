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

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/poiesic/ragingest/core"
	"github.com/poiesic/ragingest/storage"
)

const (
	opCreateBucket = "create bucket"
	opPutObject    = "put object"
	opGetObject    = "get object"
)

// ObjectStore is a storage.ObjectStore backed by S3.
type ObjectStore struct {
	client    *s3.Client
	region    string
	retryable retry.IsErrorRetryables
	logger    *slog.Logger
}

var _ storage.ObjectStore = (*ObjectStore)(nil)

// newObjectStore creates the concrete store. Used internally and by tests.
func newObjectStore(ctx context.Context, opts ...Option) (*ObjectStore, error) {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.MaxAttempts > 0 {
		loadOpts = append(loadOpts, awsconfig.WithRetryMaxAttempts(cfg.MaxAttempts))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
			o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		}
	})

	return &ObjectStore{
		client:    client,
		region:    awsCfg.Region,
		retryable: retry.IsErrorRetryables(retry.DefaultRetryables),
		logger:    slog.Default().With("component", "s3-store"),
	}, nil
}

// New creates an S3 object store from the SDK default configuration chain.
func New(ctx context.Context, opts ...Option) (storage.ObjectStore, error) {
	return newObjectStore(ctx, opts...)
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *ObjectStore) Close() error {
	return nil
}

// CreateBucket creates the bucket, treating an already-owned bucket as success.
// An empty region uses the client's region.
func (s *ObjectStore) CreateBucket(ctx context.Context, name, region string) (core.BucketStatus, error) {
	if err := core.ValidateBucketName(name); err != nil {
		return 0, err
	}
	if region == "" {
		region = s.region
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(name)}
	// us-east-1 is the one region that rejects an explicit location constraint.
	if region != "" && region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}

	_, err := s.client.CreateBucket(ctx, input)
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			s.logger.Debug("bucket already owned", "bucket", name)
			return core.BucketAlreadyOwned, nil
		}
		var exists *types.BucketAlreadyExists
		if errors.As(err, &exists) {
			return 0, core.Fatal(opCreateBucket, name, storage.ErrBucketOwnedByOther)
		}
		return 0, s.classify(opCreateBucket, name, err)
	}

	s.logger.Debug("bucket created", "bucket", name, "region", region)
	return core.BucketCreated, nil
}

// PutObject uploads localPath as bucket/key.
func (s *ObjectStore) PutObject(ctx context.Context, localPath, bucket, key string) error {
	if err := core.ValidateObjectKey(key); err != nil {
		return err
	}
	ref := core.ObjectRef{Bucket: bucket, Key: key}

	f, err := os.Open(localPath)
	if err != nil {
		return core.Fatal(opPutObject, ref.String(), err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return core.Fatal(opPutObject, ref.String(), err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(stat.Size()),
	})
	if err != nil {
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noBucket) {
			return core.Fatal(opPutObject, ref.String(), storage.ErrBucketNotFound)
		}
		return s.classify(opPutObject, ref.String(), err)
	}

	s.logger.Debug("object uploaded", "object", ref, "size", stat.Size())
	return nil
}

// GetObject downloads bucket/key.
func (s *ObjectStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := core.ValidateObjectKey(key); err != nil {
		return nil, err
	}
	ref := core.ObjectRef{Bucket: bucket, Key: key}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, core.Fatal(opGetObject, ref.String(), storage.ErrNotFound)
		}
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noBucket) {
			return nil, core.Fatal(opGetObject, ref.String(), storage.ErrBucketNotFound)
		}
		return nil, s.classify(opGetObject, ref.String(), err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, core.Transient(opGetObject, ref.String(), err)
	}
	return body, nil
}

// classify wraps err as transient when the SDK would retry it.
func (s *ObjectStore) classify(op, item string, err error) *core.Error {
	if errors.Is(err, context.Canceled) {
		return core.Fatal(op, item, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || s.retryable.IsErrorRetryable(err) == aws.TrueTernary {
		return core.Transient(op, item, err)
	}
	return core.Fatal(op, item, err)
}
