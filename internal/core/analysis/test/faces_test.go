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

func detection(conf float64, trackingId string) *model.FaceDetection {
	return &model.FaceDetection{Confidence: conf, TrackingId: trackingId}
}

func TestAggregatePrivacyModeReturnsEmptyWithoutDetecting(t *testing.T) {
	detector := &test.FakeFaceDetector{ByTimestamp: map[int64][]*model.FaceDetection{
		0: {detection(0.99, "face-1")},
	}}
	aggregator := analysis.NewFaceAggregator(detector, &test.FakeFrameProvider{}, true)

	faces := aggregator.Aggregate(context.Background(), "asset-1", []int64{0, 30_000})

	assert.NotNil(t, faces)
	assert.Empty(t, faces)
	// Privacy mode must short-circuit before the detector ever runs.
	assert.Equal(t, 0, detector.Calls())
}

func TestAggregateDeduplicatesByTrackingId(t *testing.T) {
	detector := &test.FakeFaceDetector{ByTimestamp: map[int64][]*model.FaceDetection{
		0:      {detection(0.7, "face-1")},
		30_000: {detection(0.9, "face-1"), detection(0.6, "face-2")},
		60_000: {detection(0.8, "face-1")},
	}}
	aggregator := analysis.NewFaceAggregator(detector, &test.FakeFrameProvider{}, false)

	faces := aggregator.Aggregate(context.Background(), "asset-1", []int64{0, 30_000, 60_000})

	// One representative per tracked individual, each at its max-confidence
	// observation, ordered by timestamp.
	assert.Equal(t, 2, len(faces))
	assert.Equal(t, "face-1", faces[0].TrackingId)
	assert.Equal(t, 0.9, faces[0].Confidence)
	assert.Equal(t, int64(30_000), faces[0].TimestampMs)
	assert.Equal(t, "face-2", faces[1].TrackingId)
}

func TestAggregateUntrackedDetectionsStandAlone(t *testing.T) {
	detector := &test.FakeFaceDetector{ByTimestamp: map[int64][]*model.FaceDetection{
		0:      {detection(0.8, "")},
		30_000: {detection(0.8, "")},
	}}
	aggregator := analysis.NewFaceAggregator(detector, &test.FakeFrameProvider{}, false)

	faces := aggregator.Aggregate(context.Background(), "asset-1", []int64{0, 30_000})

	assert.Equal(t, 2, len(faces))
}

func TestAggregateNeverIdentifies(t *testing.T) {
	detector := &test.FakeFaceDetector{ByTimestamp: map[int64][]*model.FaceDetection{
		0: {detection(0.95, "face-1")},
	}}
	aggregator := analysis.NewFaceAggregator(detector, &test.FakeFrameProvider{}, false)

	faces := aggregator.Aggregate(context.Background(), "asset-1", []int64{0})

	assert.Equal(t, 1, len(faces))
	assert.Equal(t, "", faces[0].Name)
	assert.False(t, faces[0].IsPublicFigure)
	assert.NotEmpty(t, faces[0].Id)
}

func TestAggregateSkipsFailingDetector(t *testing.T) {
	detector := &test.FakeFaceDetector{Err: assert.AnError}
	aggregator := analysis.NewFaceAggregator(detector, &test.FakeFrameProvider{}, false)

	faces := aggregator.Aggregate(context.Background(), "asset-1", []int64{0, 30_000})

	assert.Empty(t, faces)
}
