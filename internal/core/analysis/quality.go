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
	"strings"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// Quality component weights. The four weights sum to 1.0, so a perfect
// asset scores exactly 1.0.
const (
	weightResolution = 0.3
	weightBitrate    = 0.3
	weightFrameRate  = 0.2
	weightAudio      = 0.2
)

// Normalization ceilings for the linear components.
const (
	referenceBitrateBps = 10_000_000.0
	referenceFrameRate  = 60.0
)

// AssessQuality derives the technical quality profile of an asset from its
// metadata. Pure function: same metadata in, same metrics out. Nil metadata
// yields a zero-score profile rather than an error, matching the rest of
// the pipeline's degrade-and-continue posture.
func AssessQuality(meta *model.AssetMetadata) *model.QualityMetrics {
	if meta == nil {
		return &model.QualityMetrics{}
	}

	score := weightResolution*scoreResolution(meta.Resolution) +
		weightBitrate*clamp01(float64(meta.BitrateBps)/referenceBitrateBps) +
		weightFrameRate*clamp01(meta.FrameRate/referenceFrameRate) +
		weightAudio*clamp01(meta.Audio.Score)

	return &model.QualityMetrics{
		Resolution:   meta.Resolution,
		BitrateBps:   meta.BitrateBps,
		FrameRate:    meta.FrameRate,
		Audio:        meta.Audio,
		OverallScore: clamp01(score),
	}
}

// scoreResolution buckets the resolution string by substring match.
func scoreResolution(resolution string) float64 {
	lower := strings.ToLower(resolution)
	switch {
	case strings.Contains(lower, "4k") || strings.Contains(lower, "3840"):
		return 1.0
	case strings.Contains(lower, "1080"):
		return 0.8
	case strings.Contains(lower, "720"):
		return 0.6
	default:
		return 0.4
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
