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
// content intelligence pipeline. This file implements the emotional-tone
// summary, a Professional-tier step.
//
// Two different statistics are computed over the same sample set, on
// purpose:
//   - The overall tone comes from the emotion with the highest score
//     averaged across all samples, mapped through the fixed tone table. It
//     reflects the sustained mood of the asset.
//   - The dominant emotion is the mode of each sample's arg-max emotion. It
//     reflects the most frequent momentary peak, which can differ from the
//     sustained average (a mostly calm video with regular short bursts of
//     excitement is "calm on average" but "excited most often at peak").
//
// Collapsing the two into one computation is the classic porting mistake
// this file's tests pin down.
package analysis

import (
	"context"
	"log/slog"
	"sort"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// HighlightThreshold is the score above which a (timestamp, emotion) pair
// counts as a high-intensity highlight.
const HighlightThreshold = 0.8

// EmotionAnalyzer drives the emotion classifier over the scheduled samples
// and condenses the stream into an EmotionalSummary.
type EmotionAnalyzer struct {
	classifier EmotionClassifier
	frames     FrameProvider
}

// NewEmotionAnalyzer is the constructor for the emotion analyzer.
func NewEmotionAnalyzer(classifier EmotionClassifier, frames FrameProvider) *EmotionAnalyzer {
	return &EmotionAnalyzer{classifier: classifier, frames: frames}
}

// Analyze produces the emotional summary for one asset. Capability failures
// skip the affected sample; an empty sample set yields a neutral summary.
func (e *EmotionAnalyzer) Analyze(ctx context.Context, assetId string, samples []int64) *model.EmotionalSummary {
	collected := make([]model.EmotionSample, 0, len(samples))
	for _, ts := range samples {
		frame, err := e.frames.ExtractFrame(ctx, assetId, ts)
		if err != nil || frame == nil {
			if err != nil {
				slog.Warn("emotion sample frame extraction failed", "asset", assetId, "timestamp_ms", ts, "error", err)
			}
			continue
		}
		scores, err := e.classifier.Classify(ctx, frame)
		if err != nil || len(scores) == 0 {
			if err != nil {
				slog.Warn("emotion classification failed", "asset", assetId, "timestamp_ms", ts, "error", err)
			}
			continue
		}
		collected = append(collected, model.EmotionSample{TimestampMs: ts, Scores: scores})
	}

	return Summarize(collected)
}

// Summarize condenses an emotion sample stream. Exposed separately from
// Analyze so the statistics can be tested without capability plumbing.
func Summarize(samples []model.EmotionSample) *model.EmotionalSummary {
	if len(samples) == 0 {
		return &model.EmotionalSummary{
			OverallTone:     model.ToneNeutral,
			DominantEmotion: model.EmotionNeutral,
		}
	}

	return &model.EmotionalSummary{
		OverallTone:     model.ToneForEmotion(strongestAverage(samples)),
		Samples:         samples,
		Highlights:      collectHighlights(samples),
		DominantEmotion: dominantEmotion(samples),
	}
}

// strongestAverage returns the emotion with the highest mean score across
// all samples. Iteration follows the canonical emotion order, so on an
// exact tie the earlier emotion in that order wins deterministically.
func strongestAverage(samples []model.EmotionSample) model.EmotionType {
	totals := make(map[model.EmotionType]float64)
	for _, s := range samples {
		for emotion, score := range s.Scores {
			totals[emotion] += score
		}
	}

	best := model.EmotionNeutral
	bestAvg := -1.0
	for _, emotion := range model.CanonicalEmotions {
		avg := totals[emotion] / float64(len(samples))
		if avg > bestAvg {
			best = emotion
			bestAvg = avg
		}
	}
	return best
}

// sampleArgMax returns the peak emotion of one sample, again in canonical
// order for determinism.
func sampleArgMax(s model.EmotionSample) model.EmotionType {
	best := model.EmotionNeutral
	bestScore := -1.0
	for _, emotion := range model.CanonicalEmotions {
		if score, ok := s.Scores[emotion]; ok && score > bestScore {
			best = emotion
			bestScore = score
		}
	}
	return best
}

// dominantEmotion is the mode of the per-sample arg-max emotions.
func dominantEmotion(samples []model.EmotionSample) model.EmotionType {
	counts := make(map[model.EmotionType]int)
	for _, s := range samples {
		counts[sampleArgMax(s)]++
	}

	best := model.EmotionNeutral
	bestCount := -1
	for _, emotion := range model.CanonicalEmotions {
		if counts[emotion] > bestCount {
			best = emotion
			bestCount = counts[emotion]
		}
	}
	return best
}

// collectHighlights gathers every (timestamp, emotion) pair above the
// highlight threshold, sorted by intensity descending. The stable sort
// keeps time order among equal intensities.
func collectHighlights(samples []model.EmotionSample) []model.EmotionHighlight {
	var highlights []model.EmotionHighlight
	for _, s := range samples {
		for _, emotion := range model.CanonicalEmotions {
			if score, ok := s.Scores[emotion]; ok && score > HighlightThreshold {
				highlights = append(highlights, model.EmotionHighlight{
					TimestampMs: s.TimestampMs,
					Emotion:     emotion,
					Score:       score,
				})
			}
		}
	}
	sort.SliceStable(highlights, func(i, j int) bool {
		return highlights[i].Score > highlights[j].Score
	})
	return highlights
}
