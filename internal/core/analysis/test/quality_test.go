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

// A 4K asset at twice the reference bitrate, twice the reference frame rate
// and perfect audio maxes out every component, so the weighted sum lands on
// exactly 1.0.
func TestAssessQualityPerfectAsset(t *testing.T) {
	metrics := analysis.AssessQuality(&model.AssetMetadata{
		Resolution: "3840x2160",
		BitrateBps: 50_000_000,
		FrameRate:  120,
		Audio:      model.AudioMetrics{Score: 1.0},
	})

	assert.Equal(t, 1.0, metrics.OverallScore)
}

func TestAssessQualityNilMetadata(t *testing.T) {
	metrics := analysis.AssessQuality(nil)

	assert.NotNil(t, metrics)
	assert.Equal(t, 0.0, metrics.OverallScore)
	assert.Empty(t, metrics.Resolution)
}

// The score stays in [0, 1] across degenerate inputs, including negative
// bitrates and frame rates that a broken probe could report.
func TestAssessQualityScoreBounds(t *testing.T) {
	inputs := []*model.AssetMetadata{
		{},
		{Resolution: "640x480", BitrateBps: -5_000_000, FrameRate: -24},
		{Resolution: "8k 7680x4320", BitrateBps: 900_000_000, FrameRate: 960, Audio: model.AudioMetrics{Score: 4.0}},
		{Resolution: "1920x1080", BitrateBps: 4_500_000, FrameRate: 29.97, Audio: model.AudioMetrics{Score: 0.75}},
	}
	for _, in := range inputs {
		metrics := analysis.AssessQuality(in)
		assert.GreaterOrEqual(t, metrics.OverallScore, 0.0, "resolution %q", in.Resolution)
		assert.LessOrEqual(t, metrics.OverallScore, 1.0, "resolution %q", in.Resolution)
	}
}

// Resolution contributes through substring buckets; everything else held at
// zero isolates the resolution component.
func TestAssessQualityResolutionTiers(t *testing.T) {
	cases := []struct {
		resolution string
		score      float64
	}{
		{"3840x2160", 0.3},
		{"4k UHD", 0.3},
		{"1920x1080", 0.24},
		{"1280x720", 0.18},
		{"640x480", 0.12},
		{"", 0.12},
	}
	for _, c := range cases {
		metrics := analysis.AssessQuality(&model.AssetMetadata{Resolution: c.resolution})
		assert.InDelta(t, c.score, metrics.OverallScore, 1e-9, "resolution %q", c.resolution)
	}
}

func TestAssessQualityCopiesInputs(t *testing.T) {
	meta := &model.AssetMetadata{
		Resolution: "1920x1080",
		BitrateBps: 8_000_000,
		FrameRate:  60,
		Audio:      model.AudioMetrics{Codec: "aac", SampleRateHz: 48_000, Channels: 2, Score: 0.9},
	}
	metrics := analysis.AssessQuality(meta)

	assert.Equal(t, meta.Resolution, metrics.Resolution)
	assert.Equal(t, meta.BitrateBps, metrics.BitrateBps)
	assert.Equal(t, meta.FrameRate, metrics.FrameRate)
	assert.Equal(t, meta.Audio, metrics.Audio)
}
