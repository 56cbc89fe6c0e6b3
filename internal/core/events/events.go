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

// Package events defines the outbound event stream of an analysis session.
// The pipeline pushes progress and typed partial results to a
// caller-supplied Sink; delivery is at-least-once per step with no
// buffering guarantee, so sinks must tolerate duplicate progress
// notifications.
package events

import (
	"log/slog"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// Sink receives the event stream of one or more analysis sessions.
// Callbacks are invoked on the session's worker goroutine: a slow sink
// stalls its pipeline, so implementations that do real work should hand off
// internally.
type Sink interface {
	// OnProgress reports fractional progress in [0,1] with a short
	// human-readable status line.
	OnProgress(sessionId string, fraction float64, status string)
	OnCategoryResolved(sessionId string, category model.ContentCategory, confidence float64)
	OnScenesDetected(sessionId string, scenes []*model.DetectedScene)
	OnFacesDetected(sessionId string, faces []*model.DetectedFace)
	OnObjectsDetected(sessionId string, objects []*model.DetectedObject)
	OnTagsGenerated(sessionId string, tags []*model.ContentTag)
	// OnComplete fires exactly once per non-superseded session, with either
	// the final result or the persistence error that prevented it.
	OnComplete(sessionId string, result *model.AnalysisResult, err error)
}

// Publisher fans events for a single session out to a sink, dropping every
// event once the session is no longer active. The guard closes over the
// orchestrator's current-session check, so a superseded session goes silent
// from the moment its replacement starts, including a completion that was
// already in flight.
type Publisher struct {
	sessionId string
	sink      Sink
	active    func(sessionId string) bool
}

// NewPublisher creates the event publisher for one session. A nil sink or a
// nil guard disables the corresponding behavior (events dropped, guard
// always passes).
func NewPublisher(sessionId string, sink Sink, active func(sessionId string) bool) *Publisher {
	if active == nil {
		active = func(string) bool { return true }
	}
	return &Publisher{sessionId: sessionId, sink: sink, active: active}
}

// SessionId returns the session this publisher belongs to.
func (p *Publisher) SessionId() string { return p.sessionId }

func (p *Publisher) deliverable() bool {
	return p.sink != nil && p.active(p.sessionId)
}

func (p *Publisher) Progress(fraction float64, status string) {
	if p.deliverable() {
		p.sink.OnProgress(p.sessionId, fraction, status)
	}
}

func (p *Publisher) CategoryResolved(category model.ContentCategory, confidence float64) {
	if p.deliverable() {
		p.sink.OnCategoryResolved(p.sessionId, category, confidence)
	}
}

func (p *Publisher) ScenesDetected(scenes []*model.DetectedScene) {
	if p.deliverable() {
		p.sink.OnScenesDetected(p.sessionId, scenes)
	}
}

func (p *Publisher) FacesDetected(faces []*model.DetectedFace) {
	if p.deliverable() {
		p.sink.OnFacesDetected(p.sessionId, faces)
	}
}

func (p *Publisher) ObjectsDetected(objects []*model.DetectedObject) {
	if p.deliverable() {
		p.sink.OnObjectsDetected(p.sessionId, objects)
	}
}

func (p *Publisher) TagsGenerated(tags []*model.ContentTag) {
	if p.deliverable() {
		p.sink.OnTagsGenerated(p.sessionId, tags)
	}
}

func (p *Publisher) Complete(result *model.AnalysisResult, err error) {
	if p.deliverable() {
		p.sink.OnComplete(p.sessionId, result, err)
	}
}

// LogSink is a Sink that writes every event to the structured logger. Used
// as the default sink for Pub/Sub-triggered sessions where no caller is
// listening.
type LogSink struct{}

func (LogSink) OnProgress(sessionId string, fraction float64, status string) {
	slog.Info("analysis progress", "session", sessionId, "fraction", fraction, "status", status)
}

func (LogSink) OnCategoryResolved(sessionId string, category model.ContentCategory, confidence float64) {
	slog.Info("category resolved", "session", sessionId, "category", category, "confidence", confidence)
}

func (LogSink) OnScenesDetected(sessionId string, scenes []*model.DetectedScene) {
	slog.Info("scenes detected", "session", sessionId, "count", len(scenes))
}

func (LogSink) OnFacesDetected(sessionId string, faces []*model.DetectedFace) {
	slog.Info("faces detected", "session", sessionId, "count", len(faces))
}

func (LogSink) OnObjectsDetected(sessionId string, objects []*model.DetectedObject) {
	slog.Info("objects detected", "session", sessionId, "count", len(objects))
}

func (LogSink) OnTagsGenerated(sessionId string, tags []*model.ContentTag) {
	slog.Info("tags generated", "session", sessionId, "count", len(tags))
}

func (LogSink) OnComplete(sessionId string, result *model.AnalysisResult, err error) {
	if err != nil {
		slog.Error("analysis failed", "session", sessionId, "error", err)
		return
	}
	slog.Info("analysis complete", "session", sessionId, "asset", result.AssetId, "elapsed_ms", result.ElapsedMs)
}
