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

package orchestrator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/orchestrator"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/workflow"
	test "github.com/jaycherian/gcp-go-content-intel/internal/testutil"
)

// gateMetadataProvider blocks every metadata fetch until the gate opens (or
// the session is canceled), which lets a test hold a session mid-flight.
type gateMetadataProvider struct {
	release chan struct{}
	meta    *model.AssetMetadata
}

func (g *gateMetadataProvider) Get(ctx context.Context, _ string) (*model.AssetMetadata, error) {
	select {
	case <-g.release:
	case <-ctx.Done():
	}
	return g.meta, nil
}

func newDeps(meta *model.AssetMetadata, repo *test.MemoryRepository) *workflow.Dependencies {
	return &workflow.Dependencies{
		Metadata:          &test.FakeMetadataProvider{Meta: meta},
		Frames:            &test.FakeFrameProvider{},
		SceneClassifier:   &test.FakeSceneClassifier{Default: &model.SceneClassification{Description: "scene", Confidence: 0.9, Type: model.SceneTypeOutdoor}},
		EmotionClassifier: &test.FakeEmotionClassifier{Default: map[model.EmotionType]float64{model.EmotionNeutral: 0.9}},
		FaceDetector:      &test.FakeFaceDetector{},
		ObjectDetector:    &test.FakeObjectDetector{},
		Repository:        repo,
		MaxScenes:         10,
		PrivacyMode:       true,
	}
}

// A zero-duration asset yields an empty sampling schedule, so the pipeline
// completes with empty detection lists and a category fused from the title
// and metadata signals alone.
func TestZeroDurationAssetCompletesEmpty(t *testing.T) {
	repo := &test.MemoryRepository{}
	sink := &test.RecordingSink{}
	meta := &model.AssetMetadata{AssetId: "asset-1", Title: "Live Concert 2025", DurationMs: 0}

	o := orchestrator.New(newDeps(meta, repo), sink)
	sessionId := o.StartAnalysis(context.Background(), "asset-1", model.TierProfessional)
	o.Wait(sessionId)

	completes := sink.EventsOfKind("complete")
	assert.Len(t, completes, 1)
	assert.NoError(t, completes[0].Err)

	result := completes[0].Result
	assert.NotNil(t, result)
	assert.Empty(t, result.Scenes)
	assert.Empty(t, result.Faces)
	assert.Empty(t, result.Objects)
	assert.Equal(t, model.CategoryMusic, result.Category)

	assert.Len(t, repo.Saved(), 1)
}

// Starting session B while A is still running silences A entirely: only B's
// completion reaches the sink, and A finishes in the superseded state.
func TestStartSupersedesRunningSession(t *testing.T) {
	repo := &test.MemoryRepository{}
	sink := &test.RecordingSink{}
	gate := &gateMetadataProvider{
		release: make(chan struct{}),
		meta:    &model.AssetMetadata{AssetId: "asset-1", DurationMs: 60_000},
	}
	deps := newDeps(nil, repo)
	deps.Metadata = gate

	o := orchestrator.New(deps, sink)
	first := o.StartAnalysis(context.Background(), "asset-1", model.TierBasic)
	second := o.StartAnalysis(context.Background(), "asset-1", model.TierBasic)
	close(gate.release)
	o.Wait(first)
	o.Wait(second)

	assert.False(t, o.IsActive(first))
	assert.True(t, o.IsActive(second))

	completes := sink.EventsOfKind("complete")
	assert.Len(t, completes, 1)
	assert.Equal(t, second, completes[0].SessionId)

	for _, e := range sink.Events() {
		if e.SessionId == first {
			assert.Equal(t, "progress", e.Kind)
			assert.Equal(t, 0.0, e.Fraction, "superseded session leaked an event")
		}
	}
}

// Cancel stops the running session without a replacement; no completion is
// ever emitted for it.
func TestCancelSilencesSession(t *testing.T) {
	sink := &test.RecordingSink{}
	gate := &gateMetadataProvider{
		release: make(chan struct{}),
		meta:    &model.AssetMetadata{AssetId: "asset-1", DurationMs: 60_000},
	}
	deps := newDeps(nil, &test.MemoryRepository{})
	deps.Metadata = gate

	o := orchestrator.New(deps, sink)
	sessionId := o.StartAnalysis(context.Background(), "asset-1", model.TierBasic)
	o.Cancel()
	close(gate.release)
	o.Wait(sessionId)

	assert.False(t, o.IsActive(sessionId))
	assert.Empty(t, sink.EventsOfKind("complete"))
}

// A persistence failure surfaces through OnComplete with the assembled
// result still attached, so callers can inspect what failed to save.
func TestPersistenceFailureReportedOnComplete(t *testing.T) {
	repo := &test.MemoryRepository{Err: errors.New("insert failed")}
	sink := &test.RecordingSink{}
	meta := &model.AssetMetadata{AssetId: "asset-1", Title: "Breaking News", DurationMs: 0}

	o := orchestrator.New(newDeps(meta, repo), sink)
	sessionId := o.StartAnalysis(context.Background(), "asset-1", model.TierBasic)
	o.Wait(sessionId)

	completes := sink.EventsOfKind("complete")
	assert.Len(t, completes, 1)
	assert.Error(t, completes[0].Err)
	assert.NotNil(t, completes[0].Result)
	assert.Empty(t, repo.Saved())
}

// Back-to-back sessions on an idle orchestrator each complete normally.
func TestSequentialSessionsBothComplete(t *testing.T) {
	repo := &test.MemoryRepository{}
	sink := &test.RecordingSink{}
	meta := &model.AssetMetadata{AssetId: "asset-1", DurationMs: 0}

	o := orchestrator.New(newDeps(meta, repo), sink)
	first := o.StartAnalysis(context.Background(), "asset-1", model.TierBasic)
	o.Wait(first)
	second := o.StartAnalysis(context.Background(), "asset-1", model.TierBasic)
	o.Wait(second)

	completes := sink.EventsOfKind("complete")
	assert.Len(t, completes, 2)
	assert.Equal(t, first, completes[0].SessionId)
	assert.Equal(t, second, completes[1].SessionId)
	assert.Len(t, repo.Saved(), 2)
}
