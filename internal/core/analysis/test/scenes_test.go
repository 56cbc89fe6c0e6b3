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

package analysis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/analysis"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
	test "github.com/jaycherian/gcp-go-content-intel/internal/testutil"
)

func classification(desc string, conf float64, sceneType model.SceneType) *model.SceneClassification {
	return &model.SceneClassification{Description: desc, Confidence: conf, Type: sceneType}
}

func TestSegmentCapsScenesAndEnforcesFloor(t *testing.T) {
	// 20 samples, all confidently classified: the floor passes everything,
	// overlap suppression and the cap bound the output.
	byTs := make(map[int64]*model.SceneClassification)
	var samples []int64
	for i := int64(0); i < 20; i++ {
		ts := i * 6_000
		samples = append(samples, ts)
		byTs[ts] = classification("a scene", 0.9, model.SceneTypeAction)
	}

	segmenter := analysis.NewSceneSegmenter(
		&test.FakeSceneClassifier{ByTimestamp: byTs},
		&test.FakeFrameProvider{},
		3)
	scenes, _ := segmenter.Segment(context.Background(), "asset-1", 120_000, samples)

	assert.Equal(t, 3, len(scenes))
	for _, s := range scenes {
		assert.Greater(t, s.Confidence, analysis.SceneConfidenceFloor)
	}
}

func TestSegmentDropsConfidenceAtOrBelowFloor(t *testing.T) {
	segmenter := analysis.NewSceneSegmenter(
		&test.FakeSceneClassifier{ByTimestamp: map[int64]*model.SceneClassification{
			0:      classification("weak", 0.5, model.SceneTypeIndoor),
			10_000: classification("exactly at floor", 0.6, model.SceneTypeIndoor),
			20_000: classification("strong", 0.61, model.SceneTypeOutdoor),
		}},
		&test.FakeFrameProvider{},
		10)
	scenes, _ := segmenter.Segment(context.Background(), "asset-1", 60_000, []int64{0, 10_000, 20_000})

	// The floor is strict: 0.6 exactly does not qualify.
	assert.Equal(t, 1, len(scenes))
	assert.Equal(t, "strong", scenes[0].Description)
}

func TestSegmentScenesNeverOverlapAndAreTimeOrdered(t *testing.T) {
	// Samples 2s apart with 5s windows: neighbors overlap, so suppression
	// must thin the list.
	byTs := make(map[int64]*model.SceneClassification)
	var samples []int64
	for i := int64(0); i < 10; i++ {
		ts := i * 2_000
		samples = append(samples, ts)
		byTs[ts] = classification("x", 0.7+float64(i)*0.02, model.SceneTypeAction)
	}

	segmenter := analysis.NewSceneSegmenter(
		&test.FakeSceneClassifier{ByTimestamp: byTs},
		&test.FakeFrameProvider{},
		10)
	scenes, _ := segmenter.Segment(context.Background(), "asset-1", 60_000, samples)

	assert.NotEmpty(t, scenes)
	for i := 0; i < len(scenes); i++ {
		for j := i + 1; j < len(scenes); j++ {
			assert.False(t, scenes[i].Overlaps(scenes[j]),
				"scene %d overlaps scene %d", i, j)
		}
	}
	for i := 1; i < len(scenes); i++ {
		assert.Greater(t, scenes[i].StartMs, scenes[i-1].StartMs)
	}
}

func TestSegmentClampsWindowToDuration(t *testing.T) {
	segmenter := analysis.NewSceneSegmenter(
		&test.FakeSceneClassifier{ByTimestamp: map[int64]*model.SceneClassification{
			8_000: classification("near the end", 0.9, model.SceneTypeLandscape),
		}},
		&test.FakeFrameProvider{},
		10)
	scenes, _ := segmenter.Segment(context.Background(), "asset-1", 10_000, []int64{8_000})

	assert.Equal(t, 1, len(scenes))
	assert.Equal(t, int64(2_000), scenes[0].DurationMs)
	assert.Equal(t, int64(10_000), scenes[0].EndMs())
}

func TestSegmentEmitsChangesOnTypeFlips(t *testing.T) {
	segmenter := analysis.NewSceneSegmenter(
		&test.FakeSceneClassifier{ByTimestamp: map[int64]*model.SceneClassification{
			0:      classification("a", 0.3, model.SceneTypeIndoor),
			10_000: classification("b", 0.4, model.SceneTypeOutdoor),
			20_000: classification("c", 0.5, model.SceneTypeOutdoor),
			30_000: classification("d", 0.2, model.SceneTypeCrowd),
		}},
		&test.FakeFrameProvider{},
		10)
	scenes, changes := segmenter.Segment(context.Background(), "asset-1", 60_000, []int64{0, 10_000, 20_000, 30_000})

	// Low-confidence samples produce no key scenes but still drive the
	// transition stream.
	assert.Empty(t, scenes)
	assert.Equal(t, 2, len(changes))
	assert.Equal(t, model.SceneTypeIndoor, changes[0].FromType)
	assert.Equal(t, model.SceneTypeOutdoor, changes[0].ToType)
	assert.Equal(t, int64(10_000), changes[0].TimestampMs)
	assert.Equal(t, model.SceneTypeCrowd, changes[1].ToType)
}

func TestSegmentSkipsFailedSamples(t *testing.T) {
	segmenter := analysis.NewSceneSegmenter(
		&test.FakeSceneClassifier{ByTimestamp: map[int64]*model.SceneClassification{
			10_000: classification("survivor", 0.9, model.SceneTypeAction),
		}},
		&test.FakeFrameProvider{
			Missing: map[int64]bool{0: true},
			Failing: map[int64]bool{20_000: true},
		},
		10)
	scenes, _ := segmenter.Segment(context.Background(), "asset-1", 60_000, []int64{0, 10_000, 20_000})

	assert.Equal(t, 1, len(scenes))
	assert.Equal(t, "survivor", scenes[0].Description)
}
