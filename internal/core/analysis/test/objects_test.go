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

func TestCategorizeLabel(t *testing.T) {
	cases := []struct {
		label    string
		category model.ObjectCategory
	}{
		{"person", model.ObjectCategoryPerson},
		{"Sports Car", model.ObjectCategoryVehicle},
		{"golden retriever dog", model.ObjectCategoryAnimal},
		{"pizza slice", model.ObjectCategoryFood},
		{"office building", model.ObjectCategoryBuilding},
		{"palm tree", model.ObjectCategoryNature},
		{"tennis racket", model.ObjectCategorySports},
		{"LAPTOP", model.ObjectCategoryTechnology},
		{"umbrella", model.ObjectCategoryOther},
	}
	for _, c := range cases {
		assert.Equal(t, c.category, analysis.CategorizeLabel(c.label), "label %q", c.label)
	}
}

func TestAggregateDeduplicatesKeepingMaxConfidence(t *testing.T) {
	aggregator := analysis.NewObjectAggregator(
		&test.FakeObjectDetector{ByTimestamp: map[int64][]*model.ObjectDetection{
			0:      {{Label: "car", Confidence: 0.7}},
			15_000: {{Label: "car", Confidence: 0.9}, {Label: "dog", Confidence: 0.6}},
			30_000: {{Label: "car", Confidence: 0.8}},
		}},
		&test.FakeFrameProvider{})

	objects := aggregator.Aggregate(context.Background(), "asset-1", []int64{0, 15_000, 30_000})

	// One entry per (label, category) pair, holding the max confidence.
	assert.Equal(t, 2, len(objects))
	assert.Equal(t, "car", objects[0].Label)
	assert.Equal(t, 0.9, objects[0].Confidence)
	assert.Equal(t, model.ObjectCategoryVehicle, objects[0].Category)
	assert.Equal(t, "dog", objects[1].Label)
}

func TestAggregateConfidenceFloorIsStrict(t *testing.T) {
	aggregator := analysis.NewObjectAggregator(
		&test.FakeObjectDetector{ByTimestamp: map[int64][]*model.ObjectDetection{
			0: {
				{Label: "at floor", Confidence: 0.5},
				{Label: "above floor", Confidence: 0.51},
				{Label: "below floor", Confidence: 0.2},
			},
		}},
		&test.FakeFrameProvider{})

	objects := aggregator.Aggregate(context.Background(), "asset-1", []int64{0})

	assert.Equal(t, 1, len(objects))
	assert.Equal(t, "above floor", objects[0].Label)
}

func TestAggregateSortedByConfidenceDescending(t *testing.T) {
	aggregator := analysis.NewObjectAggregator(
		&test.FakeObjectDetector{ByTimestamp: map[int64][]*model.ObjectDetection{
			0: {
				{Label: "laptop", Confidence: 0.6},
				{Label: "person", Confidence: 0.95},
				{Label: "cat", Confidence: 0.8},
			},
		}},
		&test.FakeFrameProvider{})

	objects := aggregator.Aggregate(context.Background(), "asset-1", []int64{0})

	assert.Equal(t, 3, len(objects))
	for i := 1; i < len(objects); i++ {
		assert.GreaterOrEqual(t, objects[i-1].Confidence, objects[i].Confidence)
	}
}

func TestAggregateSkipsFailingSamples(t *testing.T) {
	aggregator := analysis.NewObjectAggregator(
		&test.FakeObjectDetector{ByTimestamp: map[int64][]*model.ObjectDetection{
			15_000: {{Label: "car", Confidence: 0.9}},
		}},
		&test.FakeFrameProvider{Failing: map[int64]bool{0: true}})

	objects := aggregator.Aggregate(context.Background(), "asset-1", []int64{0, 15_000})

	assert.Equal(t, 1, len(objects))
	assert.Equal(t, "car", objects[0].Label)
}
