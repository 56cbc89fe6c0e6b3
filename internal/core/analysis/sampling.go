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
// content intelligence pipeline. This file implements the sampling planner,
// which translates an asset duration and an analysis tier into the concrete
// timestamp schedules the capability adapters are driven with.
//
// Policy:
//   - Basic samples 2×maxScenes evenly spaced points for scene
//     classification. The over-sampling is intentional: the segmentation
//     engine ranks candidates by confidence and keeps at most maxScenes, so
//     it needs more candidates than it will keep.
//   - Advanced additionally samples faces every 30s and objects every 15s.
//   - Professional additionally samples emotion every 10s and three
//     category-anchor frames at 10%, 50% and 90% of the duration.
//
// A zero or unknown duration produces an empty plan. That is not an error:
// the pipeline degrades to metadata-only analysis and still completes.
package analysis

import "github.com/jaycherian/gcp-go-content-intel/internal/core/model"

// Fixed sampling cadences. These are product constants, not tunables: the
// mobile client's progress UI assumes these step densities per tier.
const (
	DefaultMaxScenes  = 10
	FaceIntervalMs    = 30_000
	ObjectIntervalMs  = 15_000
	EmotionIntervalMs = 10_000
)

// Anchor positions for the visual category scorer, as fractions of the
// asset duration.
var categoryAnchorFractions = []float64{0.10, 0.50, 0.90}

// SamplePlan is the full sampling schedule of one session. Every slice is
// ordered ascending; slices not applicable to the requested tier are empty.
type SamplePlan struct {
	SceneSamples    []int64
	FaceSamples     []int64
	ObjectSamples   []int64
	EmotionSamples  []int64
	CategoryAnchors []int64
}

// IsEmpty reports whether the plan contains no samples at all, which is the
// degraded metadata-only mode for assets with unknown duration.
func (p *SamplePlan) IsEmpty() bool {
	return len(p.SceneSamples) == 0 &&
		len(p.FaceSamples) == 0 &&
		len(p.ObjectSamples) == 0 &&
		len(p.EmotionSamples) == 0 &&
		len(p.CategoryAnchors) == 0
}

// Planner builds sample plans. MaxScenes bounds the key-scene list produced
// by the segmentation engine; the planner schedules twice that many scene
// samples.
type Planner struct {
	MaxScenes int
}

// NewPlanner returns a planner with the given scene cap, falling back to
// DefaultMaxScenes for non-positive values.
func NewPlanner(maxScenes int) *Planner {
	if maxScenes <= 0 {
		maxScenes = DefaultMaxScenes
	}
	return &Planner{MaxScenes: maxScenes}
}

// Plan computes the sampling schedule for one asset at one tier.
//
// Inputs:
//   - durationMs: the asset duration in milliseconds, zero when unknown.
//   - tier: the requested analysis tier.
//
// Outputs:
//   - *SamplePlan: the schedule; empty when durationMs is not positive.
func (p *Planner) Plan(durationMs int64, tier model.AnalysisTier) *SamplePlan {
	plan := &SamplePlan{}
	if durationMs <= 0 {
		return plan
	}

	plan.SceneSamples = evenSamples(durationMs, 2*p.MaxScenes)

	if tier == model.TierAdvanced || tier == model.TierProfessional {
		plan.FaceSamples = intervalSamples(durationMs, FaceIntervalMs)
		plan.ObjectSamples = intervalSamples(durationMs, ObjectIntervalMs)
	}

	if tier == model.TierProfessional {
		plan.EmotionSamples = intervalSamples(durationMs, EmotionIntervalMs)
		for _, f := range categoryAnchorFractions {
			plan.CategoryAnchors = append(plan.CategoryAnchors, int64(float64(durationMs)*f))
		}
	}

	return plan
}

// evenSamples spreads count timestamps uniformly across the duration,
// starting at zero and stopping short of the end.
func evenSamples(durationMs int64, count int) []int64 {
	if count <= 0 {
		return nil
	}
	step := float64(durationMs) / float64(count)
	out := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, int64(float64(i)*step))
	}
	return out
}

// intervalSamples returns timestamps at a fixed cadence, starting at zero,
// strictly inside the duration.
func intervalSamples(durationMs, intervalMs int64) []int64 {
	var out []int64
	for ts := int64(0); ts < durationMs; ts += intervalMs {
		out = append(out, ts)
	}
	return out
}
