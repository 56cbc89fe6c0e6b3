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

package workflow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/commands"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/events"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/workflow"
	test "github.com/jaycherian/gcp-go-content-intel/internal/testutil"
)

// newPipelineDeps builds a dependency set backed entirely by fakes: a one
// minute asset, a confident scene classifier, one tracked face at the first
// sample and one car at the first object sample.
func newPipelineDeps(repo *test.MemoryRepository) (*workflow.Dependencies, *test.FakeFaceDetector) {
	faces := &test.FakeFaceDetector{
		ByTimestamp: map[int64][]*model.FaceDetection{
			0: {{Confidence: 0.9, TrackingId: "p1", Smiling: true, EyesOpen: true}},
		},
	}
	deps := &workflow.Dependencies{
		Metadata: &test.FakeMetadataProvider{Meta: &model.AssetMetadata{
			AssetId:    "test-asset",
			Title:      "Live Concert 2025",
			DurationMs: 60_000,
			Resolution: "1920x1080",
			BitrateBps: 8_000_000,
			FrameRate:  30,
			Audio:      model.AudioMetrics{Score: 0.8},
		}},
		Frames: &test.FakeFrameProvider{},
		SceneClassifier: &test.FakeSceneClassifier{
			Default: &model.SceneClassification{Description: "concert stage", Confidence: 0.9, Type: model.SceneTypeCrowd},
		},
		EmotionClassifier: &test.FakeEmotionClassifier{
			Default: map[model.EmotionType]float64{model.EmotionHappy: 0.6, model.EmotionNeutral: 0.3},
		},
		FaceDetector: faces,
		ObjectDetector: &test.FakeObjectDetector{
			ByTimestamp: map[int64][]*model.ObjectDetection{
				0: {{Label: "car", Confidence: 0.8}},
			},
		},
		Repository:  repo,
		MaxScenes:   config.Analysis.MaxScenes,
		PrivacyMode: false,
	}
	return deps, faces
}

func runPipeline(t *testing.T, tier model.AnalysisTier, deps *workflow.Dependencies) (*model.AnalysisSession, *model.AnalysisResult, *test.RecordingSink) {
	t.Helper()
	sink := &test.RecordingSink{}
	chainCtx, session := newSessionContext(tier)
	defer chainCtx.Close()

	pipeline := workflow.NewAnalysisPipeline(tier, deps, events.NewPublisher(session.Id, sink, nil))
	pipeline.Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors(), "pipeline reported errors: %v", chainCtx.GetErrors())
	result, _ := chainCtx.Get(commands.ResultParam).(*model.AnalysisResult)
	assert.NotNil(t, result)
	return session, result, sink
}

// The basic tier runs metadata, sampling, category and scenes only: no
// detector or synthesis output appears on the result.
func TestBasicTierSkipsDetectorsAndSynthesis(t *testing.T) {
	repo := &test.MemoryRepository{}
	deps, faceDetector := newPipelineDeps(repo)

	_, result, _ := runPipeline(t, model.TierBasic, deps)

	assert.Equal(t, model.TierBasic, result.Tier)
	assert.NotEmpty(t, result.Scenes)
	assert.Empty(t, result.Faces)
	assert.Empty(t, result.Objects)
	assert.Nil(t, result.Emotional)
	assert.Nil(t, result.Quality)
	assert.Empty(t, result.Tags)
	assert.Equal(t, 0, faceDetector.Calls())
	assert.Len(t, repo.Saved(), 1)
}

// The advanced tier adds face and object aggregation but still no emotion,
// quality or tag synthesis.
func TestAdvancedTierAddsDetections(t *testing.T) {
	repo := &test.MemoryRepository{}
	deps, _ := newPipelineDeps(repo)

	_, result, _ := runPipeline(t, model.TierAdvanced, deps)

	assert.Len(t, result.Faces, 1)
	assert.Equal(t, "p1", result.Faces[0].TrackingId)
	assert.Len(t, result.Objects, 1)
	assert.Equal(t, model.ObjectCategoryVehicle, result.Objects[0].Category)
	assert.Nil(t, result.Emotional)
	assert.Nil(t, result.Quality)
	assert.Empty(t, result.Tags)
}

// The professional tier runs the full chain and emits the synthesis events.
func TestProfessionalTierFullSynthesis(t *testing.T) {
	repo := &test.MemoryRepository{}
	deps, _ := newPipelineDeps(repo)

	_, result, sink := runPipeline(t, model.TierProfessional, deps)

	assert.Equal(t, model.CategoryMusic, result.Category)
	assert.NotNil(t, result.Emotional)
	assert.Equal(t, model.EmotionHappy, result.Emotional.DominantEmotion)
	assert.NotNil(t, result.Quality)
	assert.NotEmpty(t, result.Tags)

	assert.NotEmpty(t, sink.EventsOfKind("category"))
	assert.NotEmpty(t, sink.EventsOfKind("scenes"))
	assert.NotEmpty(t, sink.EventsOfKind("tags"))
}

// Privacy mode disables face detection outright: the detector is never
// invoked, not merely filtered afterwards.
func TestPrivacyModeNeverInvokesFaceDetector(t *testing.T) {
	repo := &test.MemoryRepository{}
	deps, faceDetector := newPipelineDeps(repo)
	deps.PrivacyMode = true

	_, result, _ := runPipeline(t, model.TierAdvanced, deps)

	assert.Empty(t, result.Faces)
	assert.Equal(t, 0, faceDetector.Calls())
	assert.Len(t, result.Objects, 1)
}

// A metadata failure degrades the session instead of failing it: an empty
// schedule, no scenes, and a category with no signal to fuse.
func TestMetadataFailureDegrades(t *testing.T) {
	repo := &test.MemoryRepository{}
	deps, _ := newPipelineDeps(repo)
	deps.Metadata = &test.FakeMetadataProvider{Err: errors.New("probe failed")}

	_, result, _ := runPipeline(t, model.TierProfessional, deps)

	assert.Empty(t, result.Scenes)
	assert.Empty(t, result.Faces)
	assert.Empty(t, result.Objects)
	assert.Equal(t, model.CategoryUnknown, result.Category)
	assert.Equal(t, 0.0, result.CategoryConfidence)
	assert.Len(t, repo.Saved(), 1)
}

// Persistence is the only step allowed to fail the chain, and it fails it
// alone.
func TestPersistFailureIsOnlyChainError(t *testing.T) {
	repo := &test.MemoryRepository{Err: errors.New("insert failed")}
	deps, _ := newPipelineDeps(repo)

	sink := &test.RecordingSink{}
	chainCtx, session := newSessionContext(model.TierProfessional)
	defer chainCtx.Close()

	pipeline := workflow.NewAnalysisPipeline(model.TierProfessional, deps, events.NewPublisher(session.Id, sink, nil))
	pipeline.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
	assert.Len(t, chainCtx.GetErrors(), 1)
	_, ok := chainCtx.GetErrors()["persist-result"]
	assert.True(t, ok, "expected the persistence step to hold the error, got %v", chainCtx.GetErrors())
}

// With a keyframe store attached every detected scene gets an addressable
// thumbnail URI.
func TestSceneKeyFrameCapture(t *testing.T) {
	repo := &test.MemoryRepository{}
	store := &test.MemoryKeyFrameStore{}
	deps, _ := newPipelineDeps(repo)
	deps.KeyFrames = store

	_, result, _ := runPipeline(t, model.TierBasic, deps)

	assert.NotEmpty(t, result.Scenes)
	for _, scene := range result.Scenes {
		assert.NotEmpty(t, scene.KeyFrameURI)
	}
	assert.Equal(t, len(result.Scenes), store.StoredCount())
}
