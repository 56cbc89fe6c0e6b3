// Copyright 2025 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cloud

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// GCSKeyFrameStore uploads scene thumbnails to the keyframe bucket. It
// implements commands.KeyFrameStore.
type GCSKeyFrameStore struct {
	client *storage.Client
	bucket string
}

// NewGCSKeyFrameStore is the constructor for the keyframe store.
func NewGCSKeyFrameStore(client *storage.Client, bucket string) *GCSKeyFrameStore {
	return &GCSKeyFrameStore{client: client, bucket: bucket}
}

// Store writes the frame under keyframes/<asset>/<scene>.jpg and returns
// its gs:// URI.
func (s *GCSKeyFrameStore) Store(ctx context.Context, assetId, sceneId string, frame *model.Frame) (string, error) {
	name := fmt.Sprintf("keyframes/%s/%s.jpg", assetId, sceneId)

	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = frame.MIMEType
	if _, err := w.Write(frame.Data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("keyframe write failed for %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("keyframe upload failed for %s: %w", name, err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, name), nil
}
