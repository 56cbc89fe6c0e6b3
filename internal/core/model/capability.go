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
// intelligence pipeline. This file holds the transient types exchanged with
// the injected capability providers (frame extraction, classifiers,
// detectors). These objects live only for the duration of a single pipeline
// step and are never persisted in this form.
package model

// Frame is one extracted video frame handed to the classifier capabilities.
type Frame struct {
	AssetId     string
	TimestampMs int64
	MIMEType    string // e.g. "image/jpeg"
	Data        []byte
}

// SceneClassification is the scene classifier's verdict for one frame.
type SceneClassification struct {
	Description string
	Confidence  float64
	Type        SceneType
}

// FaceDetection is one raw per-frame face detection before aggregation.
type FaceDetection struct {
	Box        BoundingBox
	Confidence float64
	TrackingId string // Empty when the detector does not track across frames.
	Landmarks  []FaceLandmark
	Smiling    bool
	EyesOpen   bool
}

// ObjectDetection is one raw per-frame object detection before aggregation.
type ObjectDetection struct {
	Label      string
	Confidence float64
	Box        BoundingBox
	TrackingId string
}

// AssetMetadata is the structural metadata of a media asset as reported by
// the metadata capability. A zero DurationMs means the duration is unknown
// and causes the sampling planner to produce an empty schedule.
type AssetMetadata struct {
	AssetId    string
	Title      string
	Genre      string
	DurationMs int64
	Resolution string // e.g. "1920x1080"
	BitrateBps int64
	FrameRate  float64
	Audio      AudioMetrics
}
