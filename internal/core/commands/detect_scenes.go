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

package commands

import (
	"log/slog"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/analysis"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/cor"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/events"
)

// DetectScenes runs the segmentation engine over the scene samples and
// stores the key scenes and the transition stream on the session. When a
// keyframe store is configured, a representative frame of each key scene is
// captured and uploaded so the library UI can render scene thumbnails.
type DetectScenes struct {
	sessionCommand
	segmenter *analysis.SceneSegmenter
	frames    analysis.FrameProvider
	keyframes KeyFrameStore // Optional; nil disables thumbnail capture.
	pub       *events.Publisher
}

// NewDetectScenes is the constructor for the DetectScenes command.
func NewDetectScenes(name string, segmenter *analysis.SceneSegmenter, frames analysis.FrameProvider, keyframes KeyFrameStore, pub *events.Publisher) *DetectScenes {
	return &DetectScenes{
		sessionCommand: sessionCommand{BaseCommand: *cor.NewBaseCommand(name)},
		segmenter:      segmenter,
		frames:         frames,
		keyframes:      keyframes,
		pub:            pub,
	}
}

// Execute segments the asset and captures keyframes for the survivors.
func (c *DetectScenes) Execute(ctx cor.Context) {
	session := GetSession(ctx)
	plan := GetPlan(ctx)

	var durationMs int64
	if session.Metadata != nil {
		durationMs = session.Metadata.DurationMs
	}

	scenes, changes := c.segmenter.Segment(ctx.GetContext(), session.AssetId, durationMs, plan.SceneSamples)
	session.Scenes = scenes
	session.SceneChanges = changes

	if c.keyframes != nil {
		c.captureKeyFrames(ctx)
	}

	c.GetSuccessCounter().Add(ctx.GetContext(), 1)
	c.pub.ScenesDetected(session.Scenes)
	c.pub.Progress(0.45, "scenes detected")
}

// captureKeyFrames uploads one frame per key scene and records its URI.
// Capture failures leave the scene without a thumbnail, nothing more.
func (c *DetectScenes) captureKeyFrames(ctx cor.Context) {
	session := GetSession(ctx)
	for _, scene := range session.Scenes {
		frame, err := c.frames.ExtractFrame(ctx.GetContext(), session.AssetId, scene.StartMs)
		if err != nil || frame == nil {
			if err != nil {
				slog.Warn("keyframe extraction failed", "asset", session.AssetId, "scene", scene.Id, "error", err)
			}
			continue
		}
		uri, err := c.keyframes.Store(ctx.GetContext(), session.AssetId, scene.Id, frame)
		if err != nil {
			slog.Warn("keyframe upload failed", "asset", session.AssetId, "scene", scene.Id, "error", err)
			continue
		}
		scene.KeyFrameURI = uri
	}
}
