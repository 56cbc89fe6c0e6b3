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
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// ObjectConfidenceFloor rejects low-confidence raw detections before any
// aggregation happens. Strictly greater-than: a detection at exactly the
// floor is dropped.
const ObjectConfidenceFloor = 0.5

// categoryPatterns maps label substrings to coarse object categories. The
// first matching pattern wins, so more specific substrings must come before
// the generic ones. Matching is case-insensitive.
var categoryPatterns = []struct {
	substring string
	category  model.ObjectCategory
}{
	{"person", model.ObjectCategoryPerson},
	{"face", model.ObjectCategoryPerson},
	{"car", model.ObjectCategoryVehicle},
	{"truck", model.ObjectCategoryVehicle},
	{"bus", model.ObjectCategoryVehicle},
	{"motorcycle", model.ObjectCategoryVehicle},
	{"bicycle", model.ObjectCategoryVehicle},
	{"vehicle", model.ObjectCategoryVehicle},
	{"dog", model.ObjectCategoryAnimal},
	{"cat", model.ObjectCategoryAnimal},
	{"bird", model.ObjectCategoryAnimal},
	{"horse", model.ObjectCategoryAnimal},
	{"animal", model.ObjectCategoryAnimal},
	{"food", model.ObjectCategoryFood},
	{"pizza", model.ObjectCategoryFood},
	{"cake", model.ObjectCategoryFood},
	{"fruit", model.ObjectCategoryFood},
	{"drink", model.ObjectCategoryFood},
	{"building", model.ObjectCategoryBuilding},
	{"house", model.ObjectCategoryBuilding},
	{"tower", model.ObjectCategoryBuilding},
	{"bridge", model.ObjectCategoryBuilding},
	{"tree", model.ObjectCategoryNature},
	{"mountain", model.ObjectCategoryNature},
	{"flower", model.ObjectCategoryNature},
	{"water", model.ObjectCategoryNature},
	{"sky", model.ObjectCategoryNature},
	{"ball", model.ObjectCategorySports},
	{"racket", model.ObjectCategorySports},
	{"skateboard", model.ObjectCategorySports},
	{"surfboard", model.ObjectCategorySports},
	{"ski", model.ObjectCategorySports},
	{"phone", model.ObjectCategoryTechnology},
	{"laptop", model.ObjectCategoryTechnology},
	{"computer", model.ObjectCategoryTechnology},
	{"screen", model.ObjectCategoryTechnology},
	{"keyboard", model.ObjectCategoryTechnology},
	{"camera", model.ObjectCategoryTechnology},
}

// CategorizeLabel maps a raw detector label to a coarse category by
// case-insensitive substring match. Labels matching nothing fall into the
// Other bucket.
func CategorizeLabel(label string) model.ObjectCategory {
	lower := strings.ToLower(label)
	for _, p := range categoryPatterns {
		if strings.Contains(lower, p.substring) {
			return p.category
		}
	}
	return model.ObjectCategoryOther
}

// ObjectAggregator runs object detection over the scheduled samples and
// reduces the raw detections to one entry per (label, category) pair.
type ObjectAggregator struct {
	detector ObjectDetector
	frames   FrameProvider
}

// NewObjectAggregator is the constructor for the object aggregator.
func NewObjectAggregator(detector ObjectDetector, frames FrameProvider) *ObjectAggregator {
	return &ObjectAggregator{detector: detector, frames: frames}
}

// Aggregate detects objects at each sample, drops detections at or below
// the confidence floor, categorizes the survivors and deduplicates them.
// The result is ordered by confidence descending.
func (a *ObjectAggregator) Aggregate(ctx context.Context, assetId string, samples []int64) []*model.DetectedObject {
	type dedupeKey struct {
		label    string
		category model.ObjectCategory
	}
	best := make(map[dedupeKey]*model.DetectedObject)
	var order []dedupeKey

	for _, ts := range samples {
		frame, err := a.frames.ExtractFrame(ctx, assetId, ts)
		if err != nil || frame == nil {
			if err != nil {
				slog.Warn("object sample frame extraction failed", "asset", assetId, "timestamp_ms", ts, "error", err)
			}
			continue
		}
		detections, err := a.detector.Detect(ctx, frame)
		if err != nil {
			slog.Warn("object detection failed", "asset", assetId, "timestamp_ms", ts, "error", err)
			continue
		}
		for _, d := range detections {
			if d.Confidence <= ObjectConfidenceFloor {
				continue
			}
			obj := &model.DetectedObject{
				Id:          uuid.NewString(),
				Label:       d.Label,
				Confidence:  d.Confidence,
				Box:         d.Box,
				TimestampMs: ts,
				TrackingId:  d.TrackingId,
				Category:    CategorizeLabel(d.Label),
			}
			key := dedupeKey{label: obj.Label, category: obj.Category}
			existing, seen := best[key]
			if !seen {
				best[key] = obj
				order = append(order, key)
				continue
			}
			if obj.Confidence > existing.Confidence {
				best[key] = obj
			}
		}
	}

	objects := make([]*model.DetectedObject, 0, len(order))
	for _, key := range order {
		objects = append(objects, best[key])
	}
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].Confidence > objects[j].Confidence
	})
	return objects
}
