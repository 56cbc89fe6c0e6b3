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
// content intelligence pipeline. This file implements the scene segmentation
// engine.
//
// Logic Flow:
//  1. Every scheduled scene sample is classified through the injected
//     SceneClassifier capability. Samples with no frame or a failed
//     classification are skipped; the engine never aborts.
//  2. Whenever the classified type flips between two consecutive samples, a
//     SceneChange event is recorded. This transition stream is independent
//     of the key-scene list and keeps low-confidence flips.
//  3. The "key scenes" product keeps only classifications above the fixed
//     confidence floor, assigns each a fixed 5-second window clamped to the
//     remaining duration, ranks candidates by confidence descending and
//     keeps at most maxScenes of them, suppressing overlapping windows in
//     rank order. The final list is returned ordered by start offset.
//
// Selecting by confidence instead of temporal coverage is a deliberate
// product trade-off for the quick tier: a short list of moments the
// classifier is sure about beats an evenly spread list of guesses.
package analysis

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// Fixed key-scene selection constants.
const (
	SceneConfidenceFloor = 0.6
	SceneWindowMs        = 5_000
)

// SceneSegmenter turns a per-frame classification stream into key scenes
// and a transition event stream.
type SceneSegmenter struct {
	classifier SceneClassifier
	frames     FrameProvider
	maxScenes  int
}

// NewSceneSegmenter is the constructor for the segmentation engine.
//
// Inputs:
//   - classifier: the scene classification capability.
//   - frames: the frame extraction capability.
//   - maxScenes: cap on the key-scene list, defaulting to DefaultMaxScenes.
func NewSceneSegmenter(classifier SceneClassifier, frames FrameProvider, maxScenes int) *SceneSegmenter {
	if maxScenes <= 0 {
		maxScenes = DefaultMaxScenes
	}
	return &SceneSegmenter{classifier: classifier, frames: frames, maxScenes: maxScenes}
}

// observation pairs a sample timestamp with its classification.
type observation struct {
	timestampMs int64
	class       *model.SceneClassification
}

// Segment runs the segmentation over the scheduled samples.
//
// Inputs:
//   - ctx: the request context; checked implicitly through the capabilities.
//   - assetId: the asset under analysis.
//   - durationMs: total asset duration, used to clamp scene windows.
//   - samples: ascending sample timestamps from the planner.
//
// Outputs:
//   - []*model.DetectedScene: at most maxScenes non-overlapping scenes,
//     each with confidence above the floor, ordered by start offset.
//   - []*model.SceneChange: every type transition between consecutive
//     classified samples, in time order.
func (s *SceneSegmenter) Segment(
	ctx context.Context,
	assetId string,
	durationMs int64,
	samples []int64,
) ([]*model.DetectedScene, []*model.SceneChange) {
	observations := s.classifySamples(ctx, assetId, samples)
	changes := detectChanges(observations)
	scenes := selectKeyScenes(observations, durationMs, s.maxScenes)
	return scenes, changes
}

// classifySamples drives the classifier over every sample, dropping samples
// that yield no frame or fail classification.
func (s *SceneSegmenter) classifySamples(ctx context.Context, assetId string, samples []int64) []observation {
	out := make([]observation, 0, len(samples))
	for _, ts := range samples {
		frame, err := s.frames.ExtractFrame(ctx, assetId, ts)
		if err != nil || frame == nil {
			if err != nil {
				slog.Warn("scene sample frame extraction failed", "asset", assetId, "timestamp_ms", ts, "error", err)
			}
			continue
		}
		class, err := s.classifier.Classify(ctx, frame)
		if err != nil || class == nil {
			if err != nil {
				slog.Warn("scene classification failed", "asset", assetId, "timestamp_ms", ts, "error", err)
			}
			continue
		}
		out = append(out, observation{timestampMs: ts, class: class})
	}
	return out
}

// detectChanges emits a SceneChange wherever the classified type differs
// between two consecutive observations. The change carries the timestamp
// and confidence of the later sample, the first one where the new type was
// observed.
func detectChanges(observations []observation) []*model.SceneChange {
	var changes []*model.SceneChange
	for i := 1; i < len(observations); i++ {
		prev, cur := observations[i-1], observations[i]
		if prev.class.Type == cur.class.Type {
			continue
		}
		changes = append(changes, &model.SceneChange{
			TimestampMs: cur.timestampMs,
			FromType:    prev.class.Type,
			ToType:      cur.class.Type,
			Confidence:  cur.class.Confidence,
		})
	}
	return changes
}

// selectKeyScenes builds the ranked, capped, non-overlapping scene list.
func selectKeyScenes(observations []observation, durationMs int64, maxScenes int) []*model.DetectedScene {
	candidates := make([]*model.DetectedScene, 0, len(observations))
	for _, obs := range observations {
		if obs.class.Confidence <= SceneConfidenceFloor {
			continue
		}
		window := int64(SceneWindowMs)
		if remaining := durationMs - obs.timestampMs; remaining < window {
			window = remaining
		}
		if window <= 0 {
			continue
		}
		candidates = append(candidates, &model.DetectedScene{
			Id:          uuid.NewString(),
			StartMs:     obs.timestampMs,
			DurationMs:  window,
			Description: obs.class.Description,
			Confidence:  obs.class.Confidence,
			Type:        obs.class.Type,
		})
	}

	// Rank by confidence; the stable sort keeps earlier samples first on
	// exact ties so selection stays deterministic.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	// Keep the best candidates whose windows do not overlap an
	// already-kept scene. Overlap suppression in rank order is what makes
	// the final list satisfy the pairwise non-overlap invariant while still
	// favoring high-certainty moments.
	kept := make([]*model.DetectedScene, 0, maxScenes)
	for _, c := range candidates {
		if len(kept) >= maxScenes {
			break
		}
		overlaps := false
		for _, k := range kept {
			if c.Overlaps(k) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, c)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].StartMs < kept[j].StartMs })
	return kept
}
