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

// This file implements the production capability adapters: each one sends a
// single frame plus a prompt to a quota-aware Gemini model and parses the
// JSON verdict into the pipeline's capability types. Adapters stay thin on
// purpose — every scoring, thresholding and fusion decision lives in the
// analysis package, so the adapters can be swapped for fakes in tests
// without touching any product behavior.
package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// withFewShot appends a serialized example response to a prompt so the model
// answers in exactly the schema the adapter parses.
func withFewShot(prompt string, example any) string {
	data, err := json.Marshal(example)
	if err != nil {
		return prompt
	}
	return prompt + "\n\nRespond with JSON only, shaped exactly like this example:\n" + string(data)
}

// errCapabilityUnavailable reports a call against an adapter whose model was
// never configured. Returning an error keeps an unconfigured capability a
// per-stage failure instead of a panic inside a session goroutine.
func errCapabilityUnavailable(name string) error {
	return fmt.Errorf("capability %q has no configured model", name)
}

// frameContent builds the multi-modal request for one frame.
func frameContent(prompt string, frame *model.Frame) []*genai.Content {
	return []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: prompt},
			NewInlineImagePart(frame.Data, frame.MIMEType),
		},
	}}
}

// GeminiSceneClassifier backs analysis.SceneClassifier with a Gemini model.
type GeminiSceneClassifier struct {
	model  *QuotaAwareGenerativeAIModel
	prompt string
}

// NewGeminiSceneClassifier is the constructor for the scene classifier
// adapter.
func NewGeminiSceneClassifier(m *QuotaAwareGenerativeAIModel, prompt string) *GeminiSceneClassifier {
	return &GeminiSceneClassifier{model: m, prompt: withFewShot(prompt, model.ExampleSceneClassification())}
}

// Classify sends the frame to the model and parses the verdict.
func (g *GeminiSceneClassifier) Classify(ctx context.Context, frame *model.Frame) (*model.SceneClassification, error) {
	if g.model == nil {
		return nil, errCapabilityUnavailable("scene")
	}
	raw, err := GenerateGroundedResponse(ctx, 0, g.model, frameContent(g.prompt, frame))
	if err != nil {
		return nil, err
	}

	var out struct {
		Description string  `json:"description"`
		Confidence  float64 `json:"confidence"`
		Type        string  `json:"type"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse scene classification: %w", err)
	}

	return &model.SceneClassification{
		Description: out.Description,
		Confidence:  out.Confidence,
		Type:        parseSceneType(out.Type),
	}, nil
}

// parseSceneType maps the model's free-text type onto the closed enum.
func parseSceneType(in string) model.SceneType {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "action":
		return model.SceneTypeAction
	case "dialogue", "dialog":
		return model.SceneTypeDialogue
	case "landscape":
		return model.SceneTypeLandscape
	case "closeup", "close-up", "close_up":
		return model.SceneTypeCloseUp
	case "crowd":
		return model.SceneTypeCrowd
	case "indoor":
		return model.SceneTypeIndoor
	case "outdoor":
		return model.SceneTypeOutdoor
	case "transition":
		return model.SceneTypeTransition
	default:
		return model.SceneTypeUnknown
	}
}

// GeminiEmotionClassifier backs analysis.EmotionClassifier.
type GeminiEmotionClassifier struct {
	model  *QuotaAwareGenerativeAIModel
	prompt string
}

// NewGeminiEmotionClassifier is the constructor for the emotion classifier
// adapter.
func NewGeminiEmotionClassifier(m *QuotaAwareGenerativeAIModel, prompt string) *GeminiEmotionClassifier {
	return &GeminiEmotionClassifier{model: m, prompt: withFewShot(prompt, model.ExampleEmotionScores())}
}

// Classify returns the per-emotion score map for one frame. Axes the model
// invents are dropped; only the pipeline's closed emotion set survives.
func (g *GeminiEmotionClassifier) Classify(ctx context.Context, frame *model.Frame) (map[model.EmotionType]float64, error) {
	if g.model == nil {
		return nil, errCapabilityUnavailable("emotion")
	}
	raw, err := GenerateGroundedResponse(ctx, 0, g.model, frameContent(g.prompt, frame))
	if err != nil {
		return nil, err
	}

	var out map[string]float64
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse emotion scores: %w", err)
	}

	scores := make(map[model.EmotionType]float64)
	for name, score := range out {
		emotion := model.EmotionType(strings.ToLower(strings.TrimSpace(name)))
		for _, known := range model.CanonicalEmotions {
			if emotion == known {
				scores[emotion] = score
				break
			}
		}
	}
	return scores, nil
}

// faceDetectionJSON mirrors the face detector prompt's response schema.
type faceDetectionJSON struct {
	Box        model.BoundingBox    `json:"box"`
	Confidence float64              `json:"confidence"`
	TrackingId string               `json:"tracking_id"`
	Smiling    bool                 `json:"smiling"`
	EyesOpen   bool                 `json:"eyes_open"`
	Landmarks  []model.FaceLandmark `json:"landmarks"`
}

// GeminiFaceDetector backs analysis.FaceDetector. Identity is never
// requested from the model and never parsed from its answer.
type GeminiFaceDetector struct {
	model  *QuotaAwareGenerativeAIModel
	prompt string
}

// NewGeminiFaceDetector is the constructor for the face detector adapter.
func NewGeminiFaceDetector(m *QuotaAwareGenerativeAIModel, prompt string) *GeminiFaceDetector {
	return &GeminiFaceDetector{model: m, prompt: withFewShot(prompt, model.ExampleFaceDetections())}
}

// Detect returns the raw face detections in one frame.
func (g *GeminiFaceDetector) Detect(ctx context.Context, frame *model.Frame) ([]*model.FaceDetection, error) {
	if g.model == nil {
		return nil, errCapabilityUnavailable("face")
	}
	raw, err := GenerateGroundedResponse(ctx, 0, g.model, frameContent(g.prompt, frame))
	if err != nil {
		return nil, err
	}

	var out []faceDetectionJSON
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse face detections: %w", err)
	}

	detections := make([]*model.FaceDetection, 0, len(out))
	for _, d := range out {
		detections = append(detections, &model.FaceDetection{
			Box:        d.Box,
			Confidence: d.Confidence,
			TrackingId: d.TrackingId,
			Landmarks:  d.Landmarks,
			Smiling:    d.Smiling,
			EyesOpen:   d.EyesOpen,
		})
	}
	return detections, nil
}

// GeminiObjectDetector backs analysis.ObjectDetector.
type GeminiObjectDetector struct {
	model  *QuotaAwareGenerativeAIModel
	prompt string
}

// NewGeminiObjectDetector is the constructor for the object detector
// adapter.
func NewGeminiObjectDetector(m *QuotaAwareGenerativeAIModel, prompt string) *GeminiObjectDetector {
	return &GeminiObjectDetector{model: m, prompt: withFewShot(prompt, model.ExampleObjectDetections())}
}

// Detect returns the raw object detections in one frame.
func (g *GeminiObjectDetector) Detect(ctx context.Context, frame *model.Frame) ([]*model.ObjectDetection, error) {
	if g.model == nil {
		return nil, errCapabilityUnavailable("object")
	}
	raw, err := GenerateGroundedResponse(ctx, 0, g.model, frameContent(g.prompt, frame))
	if err != nil {
		return nil, err
	}

	var out []struct {
		Label      string            `json:"label"`
		Confidence float64           `json:"confidence"`
		Box        model.BoundingBox `json:"box"`
		TrackingId string            `json:"tracking_id"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse object detections: %w", err)
	}

	detections := make([]*model.ObjectDetection, 0, len(out))
	for _, d := range out {
		detections = append(detections, &model.ObjectDetection{
			Label:      d.Label,
			Confidence: d.Confidence,
			Box:        d.Box,
			TrackingId: d.TrackingId,
		})
	}
	return detections, nil
}
