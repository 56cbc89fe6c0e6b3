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
// intelligence pipeline. This file holds the closed enumerations used
// throughout the analysis engines. The string values are persisted to
// BigQuery and exposed over the API, so they are stable identifiers, not
// display strings.
package model

import "strings"

// AnalysisTier selects how deep a single analysis session goes. Each tier is
// a strict superset of the one below it: Advanced re-runs the Basic steps and
// Professional re-runs the Advanced steps.
type AnalysisTier string

const (
	TierBasic        AnalysisTier = "basic"
	TierAdvanced     AnalysisTier = "advanced"
	TierProfessional AnalysisTier = "professional"
)

// ParseTier normalizes a user-supplied tier string. Unrecognized values fall
// back to the Basic tier rather than failing, since a bad tier in a trigger
// message should not abort the whole ingestion path.
func ParseTier(in string) AnalysisTier {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case string(TierAdvanced):
		return TierAdvanced
	case string(TierProfessional):
		return TierProfessional
	default:
		return TierBasic
	}
}

// SessionState tracks the lifecycle of one analysis session. A session moves
// from Running to exactly one of Completed or Superseded; there is no retry
// state because individual capability failures degrade in place.
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateRunning    SessionState = "running"
	StateCompleted  SessionState = "completed"
	StateSuperseded SessionState = "superseded"
)

// ContentCategory is the single fused category attached to an asset.
type ContentCategory string

const (
	CategoryUnknown       ContentCategory = "unknown"
	CategoryEntertainment ContentCategory = "entertainment"
	CategoryNews          ContentCategory = "news"
	CategoryMusic         ContentCategory = "music"
	CategorySports        ContentCategory = "sports"
	CategoryMovie         ContentCategory = "movie"
	CategoryDocumentary   ContentCategory = "documentary"
	CategoryTutorial      ContentCategory = "tutorial"
	CategoryComedy        ContentCategory = "comedy"
	CategoryTravel        ContentCategory = "travel"
)

// ParseCategory normalizes a user-supplied category string. Unrecognized
// values map to Unknown so lookups simply return no rows.
func ParseCategory(in string) ContentCategory {
	switch c := ContentCategory(strings.ToLower(strings.TrimSpace(in))); c {
	case CategoryEntertainment, CategoryNews, CategoryMusic, CategorySports,
		CategoryMovie, CategoryDocumentary, CategoryTutorial, CategoryComedy,
		CategoryTravel:
		return c
	default:
		return CategoryUnknown
	}
}

// SceneType classifies a single scene interval.
type SceneType string

const (
	SceneTypeAction     SceneType = "action"
	SceneTypeDialogue   SceneType = "dialogue"
	SceneTypeLandscape  SceneType = "landscape"
	SceneTypeCloseUp    SceneType = "closeup"
	SceneTypeCrowd      SceneType = "crowd"
	SceneTypeIndoor     SceneType = "indoor"
	SceneTypeOutdoor    SceneType = "outdoor"
	SceneTypeTransition SceneType = "transition"
	SceneTypeUnknown    SceneType = "unknown"
)

// EmotionType is a single emotion axis reported by the emotion classifier.
type EmotionType string

const (
	EmotionHappy     EmotionType = "happy"
	EmotionSad       EmotionType = "sad"
	EmotionAngry     EmotionType = "angry"
	EmotionSurprised EmotionType = "surprised"
	EmotionExcited   EmotionType = "excited"
	EmotionCalm      EmotionType = "calm"
	EmotionNeutral   EmotionType = "neutral"
)

// CanonicalEmotions is the fixed iteration order for emotion score maps.
// Go map iteration is randomized, so every computation that picks a winner
// out of a score map walks this slice to stay deterministic.
var CanonicalEmotions = []EmotionType{
	EmotionHappy,
	EmotionSad,
	EmotionAngry,
	EmotionSurprised,
	EmotionExcited,
	EmotionCalm,
	EmotionNeutral,
}

// EmotionalTone is the summarized tone of a whole asset.
type EmotionalTone string

const (
	ToneNeutral   EmotionalTone = "neutral"
	TonePositive  EmotionalTone = "positive"
	ToneNegative  EmotionalTone = "negative"
	ToneEnergetic EmotionalTone = "energetic"
)

// ToneForEmotion maps the strongest averaged emotion to an overall tone.
// This table is product behavior and must stay in sync with the mobile
// client's rendering of the tone badge.
func ToneForEmotion(e EmotionType) EmotionalTone {
	switch e {
	case EmotionHappy:
		return TonePositive
	case EmotionSad, EmotionAngry:
		return ToneNegative
	case EmotionSurprised, EmotionExcited:
		return ToneEnergetic
	default:
		return ToneNeutral
	}
}

// ObjectCategory is the coarse grouping applied to raw detector labels.
type ObjectCategory string

const (
	ObjectCategoryPerson     ObjectCategory = "person"
	ObjectCategoryVehicle    ObjectCategory = "vehicle"
	ObjectCategoryAnimal     ObjectCategory = "animal"
	ObjectCategoryFood       ObjectCategory = "food"
	ObjectCategoryBuilding   ObjectCategory = "building"
	ObjectCategoryNature     ObjectCategory = "nature"
	ObjectCategorySports     ObjectCategory = "sports"
	ObjectCategoryTechnology ObjectCategory = "technology"
	ObjectCategoryOther      ObjectCategory = "other"
)

// TagType identifies which pipeline stage produced a content tag.
type TagType string

const (
	TagTypeCategory TagType = "category"
	TagTypeScene    TagType = "scene"
	TagTypeObject   TagType = "object"
	TagTypePerson   TagType = "person"
	TagTypeEmotion  TagType = "emotion"
	TagTypeQuality  TagType = "quality"
)
