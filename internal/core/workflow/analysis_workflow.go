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

// Package workflow assembles the pipeline commands into the per-tier
// analysis chains. Each tier is a strict superset of the one below it:
// Advanced runs every Basic step plus faces and objects, Professional runs
// every Advanced step plus emotion, quality and tags. Assembly and
// persistence close out every tier.
package workflow

import (
	"github.com/jaycherian/gcp-go-content-intel/internal/core/analysis"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/commands"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/cor"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/events"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// Dependencies bundles everything a pipeline chain needs. Capability
// providers may be nil: a nil provider disables its step the same way a
// failing capability would, with a degraded result instead of an error.
type Dependencies struct {
	Metadata analysis.MetadataProvider
	Frames   analysis.FrameProvider

	SceneClassifier   analysis.SceneClassifier
	EmotionClassifier analysis.EmotionClassifier
	FaceDetector      analysis.FaceDetector
	ObjectDetector    analysis.ObjectDetector

	Repository commands.ResultRepository
	KeyFrames  commands.KeyFrameStore // Optional scene thumbnail capture.

	MaxScenes   int
	PrivacyMode bool
}

// AnalysisWorkflow is the command chain of one analysis session at one
// tier. It is itself a cor.Command so callers can run it like any other.
type AnalysisWorkflow struct {
	cor.BaseCommand
	tier  model.AnalysisTier
	chain cor.Chain
}

// Execute runs the tier's chain.
func (w *AnalysisWorkflow) Execute(ctx cor.Context) {
	w.chain.Execute(ctx)
}

// IsExecutable only needs a live Go context; the chain's own steps check
// for the session.
func (w *AnalysisWorkflow) IsExecutable(ctx cor.Context) bool {
	return ctx.GetContext() != nil
}

// Tier reports which tier this workflow was built for.
func (w *AnalysisWorkflow) Tier() model.AnalysisTier {
	return w.tier
}

// NewAnalysisPipeline builds the chain for one session. The publisher is
// session-scoped, so a new pipeline is constructed per session rather than
// shared.
func NewAnalysisPipeline(tier model.AnalysisTier, deps *Dependencies, pub *events.Publisher) *AnalysisWorkflow {
	w := &AnalysisWorkflow{
		BaseCommand: *cor.NewBaseCommand("analysis-" + string(tier)),
		tier:        tier,
	}

	planner := analysis.NewPlanner(deps.MaxScenes)
	segmenter := analysis.NewSceneSegmenter(deps.SceneClassifier, deps.Frames, planner.MaxScenes)

	chain := cor.NewBaseChain(w.GetName())

	// Basic tier: metadata, sampling, category, key scenes.
	chain.AddCommand(commands.NewLoadMetadata("load-metadata", deps.Metadata, pub))
	chain.AddCommand(commands.NewPlanSamples("plan-samples", planner, pub))
	chain.AddCommand(commands.NewResolveCategory("resolve-category", analysis.NewVisualScorer(deps.Frames), pub))
	chain.AddCommand(commands.NewDetectScenes("detect-scenes", segmenter, deps.Frames, deps.KeyFrames, pub))

	// Advanced tier adds the per-frame detectors.
	if tier == model.TierAdvanced || tier == model.TierProfessional {
		chain.AddCommand(commands.NewDetectFaces("detect-faces",
			analysis.NewFaceAggregator(deps.FaceDetector, deps.Frames, deps.PrivacyMode), pub))
		chain.AddCommand(commands.NewDetectObjects("detect-objects",
			analysis.NewObjectAggregator(deps.ObjectDetector, deps.Frames), pub))
	}

	// Professional tier adds the synthesis steps.
	if tier == model.TierProfessional {
		chain.AddCommand(commands.NewAnalyzeEmotion("analyze-emotion",
			analysis.NewEmotionAnalyzer(deps.EmotionClassifier, deps.Frames), pub))
		chain.AddCommand(commands.NewAssessQuality("assess-quality", pub))
		chain.AddCommand(commands.NewSynthesizeTags("synthesize-tags", pub))
	}

	chain.AddCommand(commands.NewAssembleResult("assemble-result", pub))
	chain.AddCommand(commands.NewPersistResult("persist-result", deps.Repository))

	w.chain = chain
	return w
}
