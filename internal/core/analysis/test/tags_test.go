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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/analysis"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

func TestSynthesizeTagsNoDuplicatesSortedDescending(t *testing.T) {
	objects := []*model.DetectedObject{
		{Label: "guitar", Confidence: 0.95},
		{Label: "stage", Confidence: 0.8},
	}
	scenes := []*model.DetectedScene{
		{Description: "concert crowd", Confidence: 0.85},
		{Description: "guitar", Confidence: 0.7}, // duplicate text, lower confidence
	}

	tags := analysis.SynthesizeTags(model.CategoryMusic, objects, scenes, nil)

	seen := make(map[string]bool)
	for _, tag := range tags {
		assert.False(t, seen[tag.Text], "duplicate tag text %q", tag.Text)
		seen[tag.Text] = true
	}
	for i := 1; i < len(tags); i++ {
		assert.GreaterOrEqual(t, tags[i-1].Confidence, tags[i].Confidence)
	}

	// First occurrence wins: the guitar tag keeps the object confidence.
	assert.True(t, seen["guitar"])
	for _, tag := range tags {
		if tag.Text == "guitar" {
			assert.Equal(t, model.TagTypeObject, tag.Type)
			assert.Equal(t, 0.95, tag.Confidence)
		}
	}
}

func TestSynthesizeTagsCategoryTag(t *testing.T) {
	tags := analysis.SynthesizeTags(model.CategorySports, nil, nil, nil)

	assert.Len(t, tags, 1)
	assert.Equal(t, string(model.CategorySports), tags[0].Text)
	assert.Equal(t, model.TagTypeCategory, tags[0].Type)
	assert.Equal(t, 1.0, tags[0].Confidence)

	// Unknown gets no category tag at all.
	assert.Empty(t, analysis.SynthesizeTags(model.CategoryUnknown, nil, nil, nil))
}

// The object threshold is strictly exclusive: exactly 0.7 is not enough.
func TestSynthesizeTagsObjectThresholdIsStrict(t *testing.T) {
	objects := []*model.DetectedObject{
		{Label: "ball", Confidence: 0.7},
		{Label: "net", Confidence: 0.71},
	}

	tags := analysis.SynthesizeTags(model.CategoryUnknown, objects, nil, nil)

	assert.Len(t, tags, 1)
	assert.Equal(t, "net", tags[0].Text)
}

func TestSynthesizeTagsSkipsEmptySceneDescriptions(t *testing.T) {
	scenes := []*model.DetectedScene{
		{Description: "", Confidence: 0.9},
		{Description: "city skyline", Confidence: 0.65},
	}

	tags := analysis.SynthesizeTags(model.CategoryUnknown, nil, scenes, nil)

	assert.Len(t, tags, 1)
	assert.Equal(t, "city skyline", tags[0].Text)
	assert.Equal(t, model.TagTypeScene, tags[0].Type)
}

// Person tags never materialize. Even a face that arrives with identity
// fields populated is rejected: identification is disabled pipeline-wide.
func TestSynthesizeTagsNeverEmitsPersonTags(t *testing.T) {
	faces := []*model.DetectedFace{
		{Id: "face-1", Name: "Famous Person", IsPublicFigure: true, Confidence: 0.99},
	}

	tags := analysis.SynthesizeTags(model.CategoryUnknown, nil, nil, faces)

	assert.Empty(t, tags)
}
