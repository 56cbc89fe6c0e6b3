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

// Package analysis contains the pure fusion and aggregation engines of the
// content intelligence pipeline. This file defines the capability-provider
// interfaces the engines consume. Each capability is an opaque, injected,
// possibly-failing function: production wiring backs them with Gemini
// adapters from the cloud package, while the test suite substitutes
// deterministic fakes from the testutil package.
//
// Failure contract: a capability returning an error never aborts the
// pipeline. The engines log the failure, skip that sample (or that step) and
// continue with a degraded result. The only exception is persistence, which
// is not a capability in this sense.
package analysis

import (
	"context"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// SceneClassifier classifies the visual content of a single frame.
type SceneClassifier interface {
	Classify(ctx context.Context, frame *model.Frame) (*model.SceneClassification, error)
}

// EmotionClassifier scores one frame against every emotion axis. The
// returned map may omit emotions the model has no signal for; absent axes
// are treated as zero.
type EmotionClassifier interface {
	Classify(ctx context.Context, frame *model.Frame) (map[model.EmotionType]float64, error)
}

// FaceDetector returns the raw face detections in one frame.
type FaceDetector interface {
	Detect(ctx context.Context, frame *model.Frame) ([]*model.FaceDetection, error)
}

// ObjectDetector returns the raw object detections in one frame.
type ObjectDetector interface {
	Detect(ctx context.Context, frame *model.Frame) ([]*model.ObjectDetection, error)
}

// FrameProvider extracts a frame from an asset at a given offset. A nil
// frame with a nil error means the provider has no frame for that offset
// (for example a timestamp past the end of the stream); the caller skips
// the sample either way.
type FrameProvider interface {
	ExtractFrame(ctx context.Context, assetId string, timestampMs int64) (*model.Frame, error)
}

// MetadataProvider resolves the structural metadata of an asset.
type MetadataProvider interface {
	Get(ctx context.Context, assetId string) (*model.AssetMetadata, error)
}
