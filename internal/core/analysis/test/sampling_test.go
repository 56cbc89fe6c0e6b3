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

// Package analysis_test contains unit tests for the fusion and aggregation
// engines. This file covers the sampling planner's per-tier schedules.
package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/analysis"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

func TestPlanZeroDurationIsEmpty(t *testing.T) {
	planner := analysis.NewPlanner(10)

	for _, tier := range []model.AnalysisTier{model.TierBasic, model.TierAdvanced, model.TierProfessional} {
		plan := planner.Plan(0, tier)
		assert.True(t, plan.IsEmpty(), "tier %s", tier)
	}
	assert.True(t, planner.Plan(-100, model.TierBasic).IsEmpty())
}

func TestPlanBasicTier(t *testing.T) {
	planner := analysis.NewPlanner(10)
	plan := planner.Plan(120_000, model.TierBasic)

	// Twice maxScenes, evenly spaced from zero, strictly inside the
	// duration.
	assert.Equal(t, 20, len(plan.SceneSamples))
	assert.Equal(t, int64(0), plan.SceneSamples[0])
	for i := 1; i < len(plan.SceneSamples); i++ {
		assert.Greater(t, plan.SceneSamples[i], plan.SceneSamples[i-1])
		assert.Less(t, plan.SceneSamples[i], int64(120_000))
	}

	assert.Empty(t, plan.FaceSamples)
	assert.Empty(t, plan.ObjectSamples)
	assert.Empty(t, plan.EmotionSamples)
	assert.Empty(t, plan.CategoryAnchors)
}

func TestPlanAdvancedTierAddsFacesAndObjects(t *testing.T) {
	planner := analysis.NewPlanner(10)
	plan := planner.Plan(90_000, model.TierAdvanced)

	// 90s at 30s cadence: 0, 30000, 60000.
	assert.Equal(t, []int64{0, 30_000, 60_000}, plan.FaceSamples)
	// 90s at 15s cadence: six samples.
	assert.Equal(t, []int64{0, 15_000, 30_000, 45_000, 60_000, 75_000}, plan.ObjectSamples)
	assert.Empty(t, plan.EmotionSamples)
	assert.Empty(t, plan.CategoryAnchors)
}

func TestPlanProfessionalTierAddsEmotionAndAnchors(t *testing.T) {
	planner := analysis.NewPlanner(10)
	plan := planner.Plan(100_000, model.TierProfessional)

	// 100s at 10s cadence.
	assert.Equal(t, 10, len(plan.EmotionSamples))
	// Anchors at 10%, 50% and 90% of the duration.
	assert.Equal(t, []int64{10_000, 50_000, 90_000}, plan.CategoryAnchors)
	assert.NotEmpty(t, plan.FaceSamples)
	assert.NotEmpty(t, plan.ObjectSamples)
}

func TestNewPlannerDefaultsMaxScenes(t *testing.T) {
	planner := analysis.NewPlanner(0)
	assert.Equal(t, analysis.DefaultMaxScenes, planner.MaxScenes)

	plan := planner.Plan(60_000, model.TierBasic)
	assert.Equal(t, 2*analysis.DefaultMaxScenes, len(plan.SceneSamples))
}
