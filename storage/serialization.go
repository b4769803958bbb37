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
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/ragingest/core"
)

// MarshalObjectInfo serializes an ObjectInfo to bytes.
// StoredAt is kept with microsecond precision in UTC.
func MarshalObjectInfo(info *core.ObjectInfo) []byte {
	storedAt := info.StoredAt.UnixMicro()
	size := ord.String.Size(info.Bucket) +
		ord.String.Size(info.Key) +
		varint.Int64.Size(info.Size) +
		varint.Uint64.Size(uint64(info.Checksum)) +
		varint.Int64.Size(storedAt)

	buf := make([]byte, size)
	n := ord.String.Marshal(info.Bucket, buf)
	n += ord.String.Marshal(info.Key, buf[n:])
	n += varint.Int64.Marshal(info.Size, buf[n:])
	n += varint.Uint64.Marshal(uint64(info.Checksum), buf[n:])
	varint.Int64.Marshal(storedAt, buf[n:])
	return buf
}

// UnmarshalObjectInfo deserializes an ObjectInfo from bytes.
func UnmarshalObjectInfo(data []byte) (*core.ObjectInfo, error) {
	var (
		info     core.ObjectInfo
		checksum uint64
		storedAt int64
		n, m     int
		err      error
	)

	if info.Bucket, m, err = ord.String.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("%w: bucket: %w", ErrSerializationFailed, err)
	}
	n += m
	if info.Key, m, err = ord.String.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: key: %w", ErrSerializationFailed, err)
	}
	n += m
	if info.Size, m, err = varint.Int64.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: size: %w", ErrSerializationFailed, err)
	}
	n += m
	if checksum, m, err = varint.Uint64.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: checksum: %w", ErrSerializationFailed, err)
	}
	n += m
	if storedAt, _, err = varint.Int64.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: stored at: %w", ErrSerializationFailed, err)
	}

	info.Checksum = core.Checksum(checksum)
	info.StoredAt = time.UnixMicro(storedAt).UTC()
	return &info, nil
}
