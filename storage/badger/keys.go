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

const (
	bucketPrefix     = "bkt"
	objectPrefix     = "obj"
	objectInfoPrefix = "objinf"
)

// makeBucketKey generates a key for a bucket record.
// Format: prefix:bucket
func makeBucketKey(bucket string) []byte {
	return []byte(bucketPrefix + ":" + bucket)
}

// makeObjectKey generates a key for an object body.
// Format: prefix:bucket/key. Bucket names cannot contain '/', so the split is unambiguous.
func makeObjectKey(bucket, key string) []byte {
	return []byte(objectPrefix + ":" + bucket + "/" + key)
}

// makeObjectInfoKey generates a key for an object's metadata record.
// Format: prefix:bucket/key
func makeObjectInfoKey(bucket, key string) []byte {
	return []byte(objectInfoPrefix + ":" + bucket + "/" + key)
}

// makeObjectInfoPrefix generates the key prefix shared by all metadata records of a bucket.
func makeObjectInfoPrefix(bucket string) []byte {
	return []byte(objectInfoPrefix + ":" + bucket + "/")
}
