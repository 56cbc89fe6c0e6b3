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

package test

import (
	"context"
	"fmt"
	"sync"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// FakeFrameProvider returns a synthetic frame for every requested offset.
// Offsets listed in Missing yield (nil, nil), offsets in Failing yield an
// error, mirroring the two FrameProvider degradation paths.
type FakeFrameProvider struct {
	Missing map[int64]bool
	Failing map[int64]bool
}

func (f *FakeFrameProvider) ExtractFrame(_ context.Context, assetId string, timestampMs int64) (*model.Frame, error) {
	if f.Failing[timestampMs] {
		return nil, fmt.Errorf("frame extraction failed at %dms", timestampMs)
	}
	if f.Missing[timestampMs] {
		return nil, nil
	}
	return &model.Frame{
		AssetId:     assetId,
		TimestampMs: timestampMs,
		MIMEType:    "image/jpeg",
		Data:        []byte(fmt.Sprintf("frame-%d", timestampMs)),
	}, nil
}

// FakeMetadataProvider serves a fixed metadata record.
type FakeMetadataProvider struct {
	Meta *model.AssetMetadata
	Err  error
}

func (f *FakeMetadataProvider) Get(_ context.Context, _ string) (*model.AssetMetadata, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Meta, nil
}

// FakeSceneClassifier replays scripted classifications keyed by frame
// timestamp. Unknown timestamps fall back to Default; nil Default reports
// an error, exercising the skip path.
type FakeSceneClassifier struct {
	ByTimestamp map[int64]*model.SceneClassification
	Default     *model.SceneClassification
}

func (f *FakeSceneClassifier) Classify(_ context.Context, frame *model.Frame) (*model.SceneClassification, error) {
	if c, ok := f.ByTimestamp[frame.TimestampMs]; ok {
		return c, nil
	}
	if f.Default == nil {
		return nil, fmt.Errorf("no classification scripted for %dms", frame.TimestampMs)
	}
	return f.Default, nil
}

// FakeEmotionClassifier replays scripted emotion score maps by timestamp.
type FakeEmotionClassifier struct {
	ByTimestamp map[int64]map[model.EmotionType]float64
	Default     map[model.EmotionType]float64
}

func (f *FakeEmotionClassifier) Classify(_ context.Context, frame *model.Frame) (map[model.EmotionType]float64, error) {
	if scores, ok := f.ByTimestamp[frame.TimestampMs]; ok {
		return scores, nil
	}
	if f.Default == nil {
		return nil, fmt.Errorf("no emotion scores scripted for %dms", frame.TimestampMs)
	}
	return f.Default, nil
}

// FakeFaceDetector replays scripted face detections by timestamp. Unknown
// timestamps return no detections.
type FakeFaceDetector struct {
	ByTimestamp map[int64][]*model.FaceDetection
	Err         error
	calls       int
	mu          sync.Mutex
}

func (f *FakeFaceDetector) Detect(_ context.Context, frame *model.Frame) ([]*model.FaceDetection, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return f.ByTimestamp[frame.TimestampMs], nil
}

// Calls reports how many frames the detector saw. Privacy mode asserts on
// this staying zero.
func (f *FakeFaceDetector) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// FakeObjectDetector replays scripted object detections by timestamp.
type FakeObjectDetector struct {
	ByTimestamp map[int64][]*model.ObjectDetection
	Err         error
}

func (f *FakeObjectDetector) Detect(_ context.Context, frame *model.Frame) ([]*model.ObjectDetection, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.ByTimestamp[frame.TimestampMs], nil
}

// MemoryRepository collects saved results in memory.
type MemoryRepository struct {
	Err     error
	mu      sync.Mutex
	results []*model.AnalysisResult
}

func (r *MemoryRepository) Save(_ context.Context, result *model.AnalysisResult) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	return nil
}

// Saved returns a snapshot of everything persisted so far.
func (r *MemoryRepository) Saved() []*model.AnalysisResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.AnalysisResult, len(r.results))
	copy(out, r.results)
	return out
}

// MemoryKeyFrameStore records stored keyframes and hands back fake URIs.
type MemoryKeyFrameStore struct {
	mu     sync.Mutex
	stored map[string]string
}

func (s *MemoryKeyFrameStore) Store(_ context.Context, assetId, sceneId string, _ *model.Frame) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stored == nil {
		s.stored = make(map[string]string)
	}
	uri := fmt.Sprintf("gs://fake-keyframes/%s/%s.jpg", assetId, sceneId)
	s.stored[sceneId] = uri
	return uri, nil
}

// StoredCount reports how many keyframes were captured.
func (s *MemoryKeyFrameStore) StoredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stored)
}

// sinkEvent is one recorded callback from the orchestrator.
type SinkEvent struct {
	Kind      string
	SessionId string
	Fraction  float64
	Status    string
	Err       error
	Result    *model.AnalysisResult
}

// RecordingSink captures every event callback in order.
type RecordingSink struct {
	mu     sync.Mutex
	events []SinkEvent
}

func (s *RecordingSink) record(e SinkEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *RecordingSink) OnProgress(sessionId string, fraction float64, status string) {
	s.record(SinkEvent{Kind: "progress", SessionId: sessionId, Fraction: fraction, Status: status})
}

func (s *RecordingSink) OnCategoryResolved(sessionId string, category model.ContentCategory, confidence float64) {
	s.record(SinkEvent{Kind: "category", SessionId: sessionId, Status: string(category), Fraction: confidence})
}

func (s *RecordingSink) OnScenesDetected(sessionId string, scenes []*model.DetectedScene) {
	s.record(SinkEvent{Kind: "scenes", SessionId: sessionId, Fraction: float64(len(scenes))})
}

func (s *RecordingSink) OnFacesDetected(sessionId string, faces []*model.DetectedFace) {
	s.record(SinkEvent{Kind: "faces", SessionId: sessionId, Fraction: float64(len(faces))})
}

func (s *RecordingSink) OnObjectsDetected(sessionId string, objects []*model.DetectedObject) {
	s.record(SinkEvent{Kind: "objects", SessionId: sessionId, Fraction: float64(len(objects))})
}

func (s *RecordingSink) OnTagsGenerated(sessionId string, tags []*model.ContentTag) {
	s.record(SinkEvent{Kind: "tags", SessionId: sessionId, Fraction: float64(len(tags))})
}

func (s *RecordingSink) OnComplete(sessionId string, result *model.AnalysisResult, err error) {
	s.record(SinkEvent{Kind: "complete", SessionId: sessionId, Result: result, Err: err})
}

// Events returns a snapshot of everything recorded so far.
func (s *RecordingSink) Events() []SinkEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SinkEvent, len(s.events))
	copy(out, s.events)
	return out
}

// EventsOfKind filters the recorded events by kind.
func (s *RecordingSink) EventsOfKind(kind string) []SinkEvent {
	var out []SinkEvent
	for _, e := range s.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
