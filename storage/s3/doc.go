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


// Package s3 implements storage.ObjectStore on Amazon S3 and S3-compatible
// servers using aws-sdk-go-v2.
//
// Credentials come from the SDK's default chain (environment, shared
// config, instance roles). An endpoint override switches the client to
// path-style addressing so MinIO and similar servers work unchanged.
//
// Errors the SDK considers retryable are wrapped as transient core.Error
// values. Everything else is fatal.
package s3
