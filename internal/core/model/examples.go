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

// This file provides hardcoded example payloads for "few-shot" prompting.
// Each capability prompt embeds one of these serialized examples so the
// generative model returns JSON in exactly the shape the adapters parse.
package model

// ExampleSceneClassification returns a sample scene verdict in the response
// schema of the scene classifier prompt.
func ExampleSceneClassification() any {
	return map[string]any{
		"description": "Two people talking across a kitchen table",
		"confidence":  0.87,
		"type":        string(SceneTypeDialogue),
	}
}

// ExampleEmotionScores returns a sample per-emotion score map. Every axis of
// the closed emotion set is present so the model learns to score all of
// them, not just the dominant one.
func ExampleEmotionScores() any {
	out := make(map[string]float64, len(CanonicalEmotions))
	for _, e := range CanonicalEmotions {
		out[string(e)] = 0.05
	}
	out[string(EmotionHappy)] = 0.65
	return out
}

// ExampleFaceDetections returns a sample face detection list. Deliberately
// box-and-landmark only: the schema offers the model no place to put an
// identity.
func ExampleFaceDetections() any {
	return []map[string]any{{
		"box":         map[string]float64{"x": 0.41, "y": 0.22, "width": 0.12, "height": 0.18},
		"confidence":  0.93,
		"tracking_id": "face-1",
		"smiling":     true,
		"eyes_open":   true,
		"landmarks": []map[string]any{
			{"name": "left_eye", "x": 0.44, "y": 0.27},
			{"name": "right_eye", "x": 0.49, "y": 0.27},
		},
	}}
}

// ExampleObjectDetections returns a sample object detection list.
func ExampleObjectDetections() any {
	return []map[string]any{
		{
			"label":       "guitar",
			"confidence":  0.81,
			"box":         map[string]float64{"x": 0.10, "y": 0.55, "width": 0.25, "height": 0.30},
			"tracking_id": "obj-1",
		},
		{
			"label":       "microphone",
			"confidence":  0.64,
			"box":         map[string]float64{"x": 0.62, "y": 0.30, "width": 0.05, "height": 0.12},
			"tracking_id": "",
		},
	}
}
