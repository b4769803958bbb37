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
	"encoding/binary"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Checksum is a 64-bit content fingerprint for stored objects.
type Checksum uint64

// ChecksumOf computes a BLAKE2b-64 fingerprint of data.
// Identical content always produces an identical checksum.
func ChecksumOf(data []byte) Checksum {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return Checksum(binary.LittleEndian.Uint64(sum))
}

// String returns the checksum as a fixed-width hex string.
func (c Checksum) String() string {
	s := strconv.FormatUint(uint64(c), 16)
	return strings.Repeat("0", 16-len(s)) + s
}

// Document is a single page returned by a scraper.
type Document struct {
	Content  string            // Page text, usually markdown
	Metadata map[string]string // Source URL, title, status code, etc.
}

// String renders the document on a single line.
// Content is quoted so embedded newlines never break the one-document-per-line layout.
func (d Document) String() string {
	var b strings.Builder
	b.WriteString("page_content=")
	b.WriteString(strconv.Quote(d.Content))
	b.WriteString(" metadata={")
	for i, k := range slices.Sorted(maps.Keys(d.Metadata)) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(k))
		b.WriteString(": ")
		b.WriteString(strconv.Quote(d.Metadata[k]))
	}
	b.WriteString("}")
	return b.String()
}

// Chunk is a bounded piece of cleaned text sent to the generation service.
type Chunk struct {
	Index int
	Text  string
}

// FormattedChunk is the generation service's response for the chunk with the same Index.
type FormattedChunk struct {
	Index   int
	Content string
}

// ObjectRef addresses an object in a bucket.
type ObjectRef struct {
	Bucket string
	Key    string
}

// String returns the object's s3:// URI.
func (r ObjectRef) String() string {
	return "s3://" + r.Bucket + "/" + r.Key
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Bucket   string
	Key      string
	Size     int64
	Checksum Checksum
	StoredAt time.Time
}

// BucketStatus reports the outcome of a successful bucket creation.
type BucketStatus int

const (
	// BucketCreated means the bucket did not exist and was created.
	BucketCreated BucketStatus = iota + 1
	// BucketAlreadyOwned means the bucket already exists and belongs to the caller.
	BucketAlreadyOwned
)

func (s BucketStatus) String() string {
	switch s {
	case BucketCreated:
		return "created"
	case BucketAlreadyOwned:
		return "already-owned"
	default:
		return "unknown"
	}
}
