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
	"fmt"
)

// Domain validation errors
var (
	// ErrInvalidBucketName indicates a bucket name violates S3 naming rules.
	ErrInvalidBucketName = errors.New("invalid bucket name")

	// ErrInvalidObjectKey indicates an empty or oversized object key.
	ErrInvalidObjectKey = errors.New("invalid object key")

	// ErrInvalidURL indicates a URL that is not absolute http(s).
	ErrInvalidURL = errors.New("invalid url")
)

// Kind classifies a failure for the caller's continue/abort decision.
type Kind int

const (
	// KindFatal failures will not go away by running the same step again.
	KindFatal Kind = iota + 1
	// KindTransient failures (timeouts, throttling, 5xx) may succeed on a later run.
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindFatal:
		return "fatal"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Error is a classified failure of one external operation.
type Error struct {
	Kind Kind
	Op   string // Operation name, e.g. "scrape" or "put-object"
	Item string // Item the operation ran on (URL, object URI, chunk index); may be empty
	Err  error
}

func (e *Error) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Item, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fatal wraps err as a fatal failure of op on item.
func Fatal(op, item string, err error) *Error {
	return &Error{Kind: KindFatal, Op: op, Item: item, Err: err}
}

// Transient wraps err as a transient failure of op on item.
func Transient(op, item string, err error) *Error {
	return &Error{Kind: KindTransient, Op: op, Item: item, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
// Unclassified errors are fatal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindFatal
}

// IsTransient reports whether err was classified as transient.
func IsTransient(err error) bool {
	return err != nil && KindOf(err) == KindTransient
}
