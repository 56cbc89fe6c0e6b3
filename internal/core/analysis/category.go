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

// This file implements the category fusion engine: three independent
// scorers (title text, structured metadata, visual anchor frames) whose
// weighted votes are summed per category. The fixed weights (textual 0.4,
// metadata 0.4, visual 0.2) and the per-scorer default confidences are
// product behavior: two weak agreeing scorers can and should outrank one
// confident dissenter.
package analysis

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg" // Anchor frames arrive as JPEG from the frame provider.
	_ "image/png"
	"log/slog"
	"sort"
	"strings"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// Fusion weights per signal source. Load-bearing constants.
const (
	weightTextual  = 0.4
	weightMetadata = 0.4
	weightVisual   = 0.2
)

// Visual scorer placeholders. Motion and composition features are fixed
// constants until real measurements exist; only saturation is measured.
const (
	placeholderMotionLevel = 0.5
	placeholderComposition = 0.5
)

// CategoryScore is one scorer's verdict.
type CategoryScore struct {
	Category   model.ContentCategory
	Confidence float64
}

// titleKeywords associates title substrings with a category and a fixed
// confidence. First match wins, so the higher-confidence sets come first.
var titleKeywords = []struct {
	keywords   []string
	category   model.ContentCategory
	confidence float64
}{
	{[]string{"news", "breaking", "headline"}, model.CategoryNews, 0.9},
	{[]string{"music", "concert", "song", "album", "live performance"}, model.CategoryMusic, 0.9},
	{[]string{"sport", "match", "game", "championship", "league"}, model.CategorySports, 0.8},
	{[]string{"movie", "film", "cinema"}, model.CategoryMovie, 0.8},
	{[]string{"documentary", "docu"}, model.CategoryDocumentary, 0.8},
	{[]string{"tutorial", "how to", "howto", "guide", "lesson"}, model.CategoryTutorial, 0.8},
	{[]string{"comedy", "funny", "standup", "stand-up"}, model.CategoryComedy, 0.7},
	{[]string{"travel", "vlog", "journey", "tour"}, model.CategoryTravel, 0.7},
}

// genreKeywords maps metadata genre substrings to categories. Matched
// genres always score 0.9.
var genreKeywords = []struct {
	substring string
	category  model.ContentCategory
}{
	{"news", model.CategoryNews},
	{"music", model.CategoryMusic},
	{"sport", model.CategorySports},
	{"movie", model.CategoryMovie},
	{"film", model.CategoryMovie},
	{"documentary", model.CategoryDocumentary},
	{"education", model.CategoryTutorial},
	{"tutorial", model.CategoryTutorial},
	{"comedy", model.CategoryComedy},
	{"travel", model.CategoryTravel},
	{"entertainment", model.CategoryEntertainment},
}

// ScoreTitle is the textual scorer: keyword matching against the asset
// title. No title at all scores Unknown at zero; a title matching nothing
// falls back to Entertainment at 0.3.
func ScoreTitle(title string) CategoryScore {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return CategoryScore{Category: model.CategoryUnknown, Confidence: 0.0}
	}
	lower := strings.ToLower(trimmed)
	for _, set := range titleKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return CategoryScore{Category: set.category, Confidence: set.confidence}
			}
		}
	}
	return CategoryScore{Category: model.CategoryEntertainment, Confidence: 0.3}
}

// ScoreMetadata is the structured-metadata scorer. Genre keywords beat the
// duration heuristics, which beat the low-confidence Entertainment default.
func ScoreMetadata(meta *model.AssetMetadata) CategoryScore {
	if meta == nil {
		return CategoryScore{Category: model.CategoryUnknown, Confidence: 0.0}
	}

	genre := strings.ToLower(strings.TrimSpace(meta.Genre))
	if genre != "" {
		for _, g := range genreKeywords {
			if strings.Contains(genre, g.substring) {
				return CategoryScore{Category: g.category, Confidence: 0.9}
			}
		}
	}

	switch d := meta.DurationMs; {
	case d > 60*60*1000:
		return CategoryScore{Category: model.CategoryMovie, Confidence: 0.6}
	case d > 30*60*1000:
		return CategoryScore{Category: model.CategoryDocumentary, Confidence: 0.6}
	case d > 0 && d < 5*60*1000:
		return CategoryScore{Category: model.CategoryMusic, Confidence: 0.6}
	}

	return CategoryScore{Category: model.CategoryEntertainment, Confidence: 0.2}
}

// VisualScorer scores the anchor frames of an asset. It decodes each frame,
// measures the color-saturation ratio and combines it with the fixed motion
// and composition placeholders.
type VisualScorer struct {
	frames FrameProvider
}

// NewVisualScorer is the constructor for the visual scorer.
func NewVisualScorer(frames FrameProvider) *VisualScorer {
	return &VisualScorer{frames: frames}
}

// Score samples the anchor timestamps and maps averaged frame features to a
// category. With no decodable anchor frames the visual signal abstains
// (Unknown at zero confidence), leaving fusion to the other two scorers.
func (v *VisualScorer) Score(ctx context.Context, assetId string, anchors []int64) CategoryScore {
	var saturations []float64
	for _, ts := range anchors {
		frame, err := v.frames.ExtractFrame(ctx, assetId, ts)
		if err != nil || frame == nil {
			if err != nil {
				slog.Warn("anchor frame extraction failed", "asset", assetId, "timestamp_ms", ts, "error", err)
			}
			continue
		}
		sat, err := measureSaturation(frame.Data)
		if err != nil {
			slog.Warn("anchor frame decode failed", "asset", assetId, "timestamp_ms", ts, "error", err)
			continue
		}
		saturations = append(saturations, sat)
	}
	if len(saturations) == 0 {
		return CategoryScore{Category: model.CategoryUnknown, Confidence: 0.0}
	}

	var total float64
	for _, s := range saturations {
		total += s
	}
	return classifyVisualFeatures(total/float64(len(saturations)), placeholderMotionLevel, placeholderComposition)
}

// classifyVisualFeatures maps the (saturation, motion, composition) triple
// to a category with a fixed confidence. The thresholds are coarse on
// purpose: the visual signal only carries a 0.2 fusion weight and exists to
// break ties between the other two scorers.
func classifyVisualFeatures(saturation, motion, composition float64) CategoryScore {
	switch {
	case saturation > 0.6 && motion >= 0.5:
		return CategoryScore{Category: model.CategorySports, Confidence: 0.6}
	case saturation > 0.6:
		return CategoryScore{Category: model.CategoryMusic, Confidence: 0.5}
	case saturation < 0.2 && composition >= 0.5:
		return CategoryScore{Category: model.CategoryDocumentary, Confidence: 0.5}
	case saturation < 0.2:
		return CategoryScore{Category: model.CategoryNews, Confidence: 0.4}
	case motion >= 0.7:
		return CategoryScore{Category: model.CategoryMovie, Confidence: 0.7}
	default:
		return CategoryScore{Category: model.CategoryEntertainment, Confidence: 0.4}
	}
}

// measureSaturation decodes an image and returns the fraction of sampled
// pixels whose chroma spread exceeds a fixed cutoff. The image is walked on
// a stride grid to bound the cost on large frames.
func measureSaturation(data []byte) (float64, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}

	bounds := img.Bounds()
	strideX := max(1, bounds.Dx()/64)
	strideY := max(1, bounds.Dy()/64)

	var sampled, saturated int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += strideY {
		for x := bounds.Min.X; x < bounds.Max.X; x += strideX {
			r, g, b, _ := img.At(x, y).RGBA()
			hi := max(r, max(g, b))
			lo := min(r, min(g, b))
			sampled++
			// Chroma spread over 25% of full scale counts as saturated.
			if hi-lo > 0x4000 {
				saturated++
			}
		}
	}
	if sampled == 0 {
		return 0, nil
	}
	return float64(saturated) / float64(sampled), nil
}

// Fuse combines the three scorer verdicts by weighted voting: each vote
// contributes weight x confidence to its category, identical categories sum
// across scorers, and the highest total wins. Exact ties fall back to
// Entertainment; an all-zero board means no scorer had any signal and the
// result is Unknown.
func Fuse(textual, metadata, visual CategoryScore) (model.ContentCategory, float64) {
	totals := make(map[model.ContentCategory]float64)
	totals[textual.Category] += weightTextual * textual.Confidence
	totals[metadata.Category] += weightMetadata * metadata.Confidence
	totals[visual.Category] += weightVisual * visual.Confidence
	delete(totals, model.CategoryUnknown)

	type entry struct {
		category model.ContentCategory
		score    float64
	}
	entries := make([]entry, 0, len(totals))
	for c, s := range totals {
		if s > 0 {
			entries = append(entries, entry{category: c, score: s})
		}
	}
	if len(entries) == 0 {
		return model.CategoryUnknown, 0.0
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].category < entries[j].category
	})
	if len(entries) > 1 && entries[0].score == entries[1].score {
		return model.CategoryEntertainment, entries[0].score
	}
	return entries[0].category, entries[0].score
}
