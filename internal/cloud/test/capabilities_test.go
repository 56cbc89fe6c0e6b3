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

package cloud_test

import (
	"context"
	"testing"

	"github.com/zeebo/assert"

	"github.com/jaycherian/gcp-go-content-intel/internal/cloud"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// An adapter built without a model must return an error on first use, not
// panic. The config can legitimately omit a capability, and a session
// goroutine has no recover path of its own.
func TestAdaptersWithoutModelReturnError(t *testing.T) {
	ctx := context.Background()
	frame := &model.Frame{Data: []byte("not-an-image"), MIMEType: "image/jpeg"}

	scene, err := cloud.NewGeminiSceneClassifier(nil, "classify").Classify(ctx, frame)
	assert.Error(t, err)
	assert.Nil(t, scene)

	emotions, err := cloud.NewGeminiEmotionClassifier(nil, "score").Classify(ctx, frame)
	assert.Error(t, err)
	assert.Nil(t, emotions)

	faces, err := cloud.NewGeminiFaceDetector(nil, "detect").Detect(ctx, frame)
	assert.Error(t, err)
	assert.Nil(t, faces)

	objects, err := cloud.NewGeminiObjectDetector(nil, "detect").Detect(ctx, frame)
	assert.Error(t, err)
	assert.Nil(t, objects)
}
