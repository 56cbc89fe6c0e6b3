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

package analysis

import (
	"sort"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// TagObjectThreshold is the minimum (exclusive) confidence for an object to
// earn a tag. Scenes are tagged unconditionally.
const TagObjectThreshold = 0.7

// personTagThreshold gates the public-figure tag branch. The branch is
// retained for library-format compatibility but is dead in practice: the
// face aggregator never populates identity fields, and Synthesize treats
// IsPublicFigure as false even if a caller hands it faces that set it.
const personTagThreshold = 0.8

// SynthesizeTags derives the searchable tag list of a result. Insertion
// order is category, objects, scenes, persons; tag text is deduplicated
// first-occurrence-wins before the final stable sort by confidence
// descending, so the insertion order doubles as the tie-break.
func SynthesizeTags(
	category model.ContentCategory,
	objects []*model.DetectedObject,
	scenes []*model.DetectedScene,
	faces []*model.DetectedFace,
) []*model.ContentTag {
	var tags []*model.ContentTag

	if category != model.CategoryUnknown {
		tags = append(tags, &model.ContentTag{
			Text:       string(category),
			Type:       model.TagTypeCategory,
			Confidence: 1.0,
		})
	}

	for _, o := range objects {
		if o.Confidence > TagObjectThreshold {
			tags = append(tags, &model.ContentTag{
				Text:       o.Label,
				Type:       model.TagTypeObject,
				Confidence: o.Confidence,
			})
		}
	}

	for _, s := range scenes {
		if s.Description == "" {
			continue
		}
		tags = append(tags, &model.ContentTag{
			Text:       s.Description,
			Type:       model.TagTypeScene,
			Confidence: s.Confidence,
		})
	}

	// Person tags would require both IsPublicFigure and confidence above the
	// threshold. Identification is disabled pipeline-wide, so a face claiming
	// to be a public figure means a capability violated that contract; the
	// claim is rejected here rather than propagated, which makes this branch
	// intentionally unreachable.
	for _, f := range faces {
		if publicFigure(f) && f.Confidence > personTagThreshold {
			tags = append(tags, &model.ContentTag{
				Text:       f.Name,
				Type:       model.TagTypePerson,
				Confidence: f.Confidence,
			})
		}
	}

	tags = dedupeTags(tags)
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Confidence > tags[j].Confidence
	})
	return tags
}

// publicFigure is the defensive override of DetectedFace.IsPublicFigure:
// always false, regardless of what the face carries.
func publicFigure(_ *model.DetectedFace) bool {
	return false
}

// dedupeTags keeps the first occurrence of each tag text.
func dedupeTags(tags []*model.ContentTag) []*model.ContentTag {
	seen := make(map[string]bool, len(tags))
	out := tags[:0]
	for _, t := range tags {
		if seen[t.Text] {
			continue
		}
		seen[t.Text] = true
		out = append(out, t)
	}
	return out
}
