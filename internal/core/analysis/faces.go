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

	"github.com/google/uuid"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// FaceAggregator runs face detection over the scheduled samples and
// deduplicates the raw detections into one representative per tracked
// individual.
//
// Privacy contract: when privacy mode is enabled the aggregator returns an
// empty list without ever invoking the detector, so no face data is even
// transiently held. Independently of privacy mode, face identification is
// permanently disabled: Name stays empty and IsPublicFigure stays false on
// every face this aggregator produces, regardless of what the detector
// capability reports.
type FaceAggregator struct {
	detector    FaceDetector
	frames      FrameProvider
	privacyMode bool
}

// NewFaceAggregator is the constructor for the face aggregator.
func NewFaceAggregator(detector FaceDetector, frames FrameProvider, privacyMode bool) *FaceAggregator {
	return &FaceAggregator{detector: detector, frames: frames, privacyMode: privacyMode}
}

// faceObservation pairs a raw detection with the sample it came from.
type faceObservation struct {
	timestampMs int64
	detection   *model.FaceDetection
}

// Aggregate detects faces at each sample and collapses the stream to one
// face per individual. Samples whose frame or detection fails are skipped.
func (f *FaceAggregator) Aggregate(ctx context.Context, assetId string, samples []int64) []*model.DetectedFace {
	if f.privacyMode {
		slog.Info("privacy mode enabled, skipping face detection", "asset", assetId)
		return []*model.DetectedFace{}
	}

	var observations []faceObservation
	for _, ts := range samples {
		frame, err := f.frames.ExtractFrame(ctx, assetId, ts)
		if err != nil || frame == nil {
			if err != nil {
				slog.Warn("face sample frame extraction failed", "asset", assetId, "timestamp_ms", ts, "error", err)
			}
			continue
		}
		detections, err := f.detector.Detect(ctx, frame)
		if err != nil {
			slog.Warn("face detection failed", "asset", assetId, "timestamp_ms", ts, "error", err)
			continue
		}
		for _, d := range detections {
			observations = append(observations, faceObservation{timestampMs: ts, detection: d})
		}
	}

	return dedupeFaces(observations)
}

// dedupeFaces groups observations by tracking id and keeps the
// highest-confidence observation of each group as the representative.
// Detections without a tracking id cannot be correlated across frames, so
// each one stands alone.
func dedupeFaces(observations []faceObservation) []*model.DetectedFace {
	groups := make(map[string][]faceObservation)
	var order []string // Tracking ids in first-seen order.
	var untracked []faceObservation
	for _, o := range observations {
		id := o.detection.TrackingId
		if id == "" {
			untracked = append(untracked, o)
			continue
		}
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], o)
	}

	faces := make([]*model.DetectedFace, 0, len(order)+len(untracked))
	for _, id := range order {
		faces = append(faces, representative(groups[id]))
	}
	for _, o := range untracked {
		faces = append(faces, representative([]faceObservation{o}))
	}

	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].TimestampMs < faces[j].TimestampMs
	})
	return faces
}

// representative picks the highest-confidence observation of a group. Ties
// keep the earlier observation.
func representative(group []faceObservation) *model.DetectedFace {
	best := group[0]
	for _, o := range group[1:] {
		if o.detection.Confidence > best.detection.Confidence {
			best = o
		}
	}
	d := best.detection
	return &model.DetectedFace{
		Id:          uuid.NewString(),
		Box:         d.Box,
		TimestampMs: best.timestampMs,
		Confidence:  d.Confidence,
		TrackingId:  d.TrackingId,
		Landmarks:   d.Landmarks,
		Smiling:     d.Smiling,
		EyesOpen:    d.EyesOpen,
		// Identification is disabled as policy: Name and IsPublicFigure are
		// left at their zero values no matter what the detector returned.
	}
}
