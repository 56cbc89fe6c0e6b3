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

// Package model defines the core data structures for the content
// intelligence pipeline. This file holds the session accumulator and the
// immutable analysis result, plus every entity that ends up inside a result:
// scenes, scene changes, faces, objects, tags, the emotional summary and the
// quality metrics.
//
// Ownership rules:
//   - AnalysisSession is the only mutable object in the pipeline. It is
//     owned exclusively by the orchestrator goroutine that created it and is
//     mutated by the workflow commands running on that goroutine.
//   - Everything else is created once during a run and is read-only after it
//     has been folded into an AnalysisResult via Snapshot.
package model

import "time"

// BoundingBox locates a detection inside a frame. Coordinates are
// normalized to [0,1] relative to the frame dimensions.
type BoundingBox struct {
	X      float64 `json:"x" bigquery:"x"`
	Y      float64 `json:"y" bigquery:"y"`
	Width  float64 `json:"width" bigquery:"width"`
	Height float64 `json:"height" bigquery:"height"`
}

// DetectedScene is one scene interval selected by the segmentation engine.
//
// Invariants, guaranteed by the segmentation engine for the scenes of one
// session: StartMs+DurationMs never exceeds the asset duration, scenes are
// pairwise non-overlapping, and the list is ordered by StartMs ascending.
type DetectedScene struct {
	Id          string    `json:"id"`
	StartMs     int64     `json:"start_ms"`
	DurationMs  int64     `json:"duration_ms"`
	Description string    `json:"description"`
	Confidence  float64   `json:"confidence"`
	Type        SceneType `json:"type"`
	KeyFrameURI string    `json:"key_frame_uri,omitempty"` // GCS URI of the captured keyframe, empty when capture is disabled.
}

// EndMs returns the exclusive end offset of the scene.
func (s *DetectedScene) EndMs() int64 {
	return s.StartMs + s.DurationMs
}

// Overlaps reports whether two scene intervals share any time span.
func (s *DetectedScene) Overlaps(other *DetectedScene) bool {
	return s.StartMs < other.EndMs() && other.StartMs < s.EndMs()
}

// SceneChange is one entry of the auxiliary transition stream. It is
// independent of the DetectedScene list: every classified type flip between
// two consecutive samples is recorded here, even when neither sample
// survives key-scene selection.
type SceneChange struct {
	TimestampMs int64     `json:"timestamp_ms"`
	FromType    SceneType `json:"from_type"`
	ToType      SceneType `json:"to_type"`
	Confidence  float64   `json:"confidence"`
}

// FaceLandmark is a single named facial landmark position.
type FaceLandmark struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// DetectedFace is the deduplicated representative of one tracked individual.
//
// The Name and IsPublicFigure fields exist for schema compatibility with the
// player's library format but are never populated: identification is
// disabled as a fixed policy, independent of what the face detector
// capability supports. When privacy mode is on the aggregator never creates
// DetectedFace values at all.
type DetectedFace struct {
	Id             string         `json:"id"`
	Box            BoundingBox    `json:"box"`
	TimestampMs    int64          `json:"timestamp_ms"`
	Confidence     float64        `json:"confidence"`
	TrackingId     string         `json:"tracking_id,omitempty"` // Empty when the detector did not track this face.
	Landmarks      []FaceLandmark `json:"landmarks,omitempty"`
	Smiling        bool           `json:"smiling"`
	EyesOpen       bool           `json:"eyes_open"`
	Name           string         `json:"name,omitempty"`
	IsPublicFigure bool           `json:"is_public_figure"`
}

// DetectedObject is one deduplicated object detection. Within a single
// result no two objects share the same (Label, Category) pair; the
// aggregator keeps only the highest-confidence instance per pair.
type DetectedObject struct {
	Id          string         `json:"id"`
	Label       string         `json:"label"`
	Confidence  float64        `json:"confidence"`
	Box         BoundingBox    `json:"box"`
	TimestampMs int64          `json:"timestamp_ms"`
	TrackingId  string         `json:"tracking_id,omitempty"`
	Category    ObjectCategory `json:"category"`
}

// ContentTag is one searchable tag derived from the analysis. Tag text is
// unique within a result and the list is ordered by confidence descending,
// with ties broken by insertion order (category, object, scene, person).
type ContentTag struct {
	Text       string  `json:"text"`
	Type       TagType `json:"type"`
	Confidence float64 `json:"confidence"`
}

// EmotionSample is the classifier output for one sampled timestamp.
type EmotionSample struct {
	TimestampMs int64                   `json:"timestamp_ms"`
	Scores      map[EmotionType]float64 `json:"scores"`
}

// EmotionHighlight marks one high-intensity emotional moment.
type EmotionHighlight struct {
	TimestampMs int64       `json:"timestamp_ms"`
	Emotion     EmotionType `json:"emotion"`
	Score       float64     `json:"score"`
}

// EmotionalSummary condenses the per-sample emotion stream. OverallTone and
// DominantEmotion are deliberately different statistics over the same
// samples: the tone reflects the sustained average while the dominant
// emotion is the most frequent per-sample peak. Derived data only; it is
// never persisted outside of its parent AnalysisResult.
type EmotionalSummary struct {
	OverallTone     EmotionalTone      `json:"overall_tone"`
	Samples         []EmotionSample    `json:"samples,omitempty"`
	Highlights      []EmotionHighlight `json:"highlights,omitempty"`
	DominantEmotion EmotionType        `json:"dominant_emotion"`
}

// AudioMetrics carries the audio-only portion of the quality assessment.
// Score is the pre-computed audio sub-score supplied with the asset
// metadata; the quality assessor clamps it into [0,1] before weighting.
type AudioMetrics struct {
	Codec        string  `json:"codec,omitempty"`
	SampleRateHz int     `json:"sample_rate_hz,omitempty"`
	Channels     int     `json:"channels,omitempty"`
	Score        float64 `json:"score"`
}

// QualityMetrics is the technical quality profile of an asset. OverallScore
// is the fixed weighted sum (resolution 0.3, bitrate 0.3, frame rate 0.2,
// audio 0.2) with every component clamped to [0,1] before weighting.
type QualityMetrics struct {
	Resolution   string       `json:"resolution"`
	BitrateBps   int64        `json:"bitrate_bps"`
	FrameRate    float64      `json:"frame_rate"`
	Audio        AudioMetrics `json:"audio"`
	OverallScore float64      `json:"overall_score"`
}

// AnalysisSession is the mutable accumulator of one in-flight analysis.
// Exactly one session may be active per orchestrator instance; starting a
// new session supersedes the previous one and its in-flight work is
// discarded, never merged.
type AnalysisSession struct {
	Id        string
	AssetId   string
	Tier      AnalysisTier
	StartedAt time.Time
	State     SessionState

	Metadata *AssetMetadata

	Category           ContentCategory
	CategoryConfidence float64
	Scenes             []*DetectedScene
	SceneChanges       []*SceneChange
	Faces              []*DetectedFace
	Objects            []*DetectedObject
	Emotional          *EmotionalSummary
	Quality            *QualityMetrics
	Tags               []*ContentTag
}

// NewAnalysisSession creates a running session for one asset at one tier.
func NewAnalysisSession(id, assetId string, tier AnalysisTier) *AnalysisSession {
	return &AnalysisSession{
		Id:        id,
		AssetId:   assetId,
		Tier:      tier,
		StartedAt: time.Now(),
		State:     StateRunning,
		Category:  CategoryUnknown,
	}
}

// Snapshot folds the session accumulator into an immutable AnalysisResult.
// Called exactly once, by the assemble step, after the last analysis step of
// the session's tier has run.
func (s *AnalysisSession) Snapshot(completedAt time.Time) *AnalysisResult {
	return &AnalysisResult{
		SessionId:          s.Id,
		AssetId:            s.AssetId,
		Tier:               s.Tier,
		Category:           s.Category,
		CategoryConfidence: s.CategoryConfidence,
		Scenes:             s.Scenes,
		SceneChanges:       s.SceneChanges,
		Faces:              s.Faces,
		Objects:            s.Objects,
		Emotional:          s.Emotional,
		Quality:            s.Quality,
		Tags:               s.Tags,
		ElapsedMs:          completedAt.Sub(s.StartedAt).Milliseconds(),
		CompletedAt:        completedAt,
	}
}

// AnalysisResult is the immutable snapshot of a completed session. It is the
// unit handed to the persistence sink and to search and recommendation
// consumers. Created once, never mutated.
type AnalysisResult struct {
	SessionId          string            `json:"session_id"`
	AssetId            string            `json:"asset_id"`
	Tier               AnalysisTier      `json:"tier"`
	Category           ContentCategory   `json:"category"`
	CategoryConfidence float64           `json:"category_confidence"`
	Scenes             []*DetectedScene  `json:"scenes,omitempty"`
	SceneChanges       []*SceneChange    `json:"scene_changes,omitempty"`
	Faces              []*DetectedFace   `json:"faces,omitempty"`
	Objects            []*DetectedObject `json:"objects,omitempty"`
	Emotional          *EmotionalSummary `json:"emotional,omitempty"`
	Quality            *QualityMetrics   `json:"quality,omitempty"`
	Tags               []*ContentTag     `json:"tags,omitempty"`
	ElapsedMs          int64             `json:"elapsed_ms"`
	CompletedAt        time.Time         `json:"completed_at"`
}

// SearchResult is one hit of the vector search surface, ordered by distance
// ascending (closest first).
type SearchResult struct {
	AssetId   string  `json:"asset_id" bigquery:"asset_id"`
	SessionId string  `json:"session_id" bigquery:"session_id"`
	Distance  float64 `json:"distance" bigquery:"distance"`
}
