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
	"github.com/jaycherian/gcp-go-content-intel/internal/core/analysis"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/cor"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/events"
)

// ResolveCategory fuses the textual, metadata and visual category signals
// into the session's final category. The visual scorer only participates
// when the plan carries anchor samples (Professional tier); otherwise it
// abstains and the fusion runs on the two metadata-driven signals alone.
type ResolveCategory struct {
	sessionCommand
	visual *analysis.VisualScorer
	pub    *events.Publisher
}

// NewResolveCategory is the constructor for the ResolveCategory command.
func NewResolveCategory(name string, visual *analysis.VisualScorer, pub *events.Publisher) *ResolveCategory {
	return &ResolveCategory{
		sessionCommand: sessionCommand{BaseCommand: *cor.NewBaseCommand(name)},
		visual:         visual,
		pub:            pub,
	}
}

// Execute scores the three signals and records the fused category.
func (c *ResolveCategory) Execute(ctx cor.Context) {
	session := GetSession(ctx)
	plan := GetPlan(ctx)

	var title string
	if session.Metadata != nil {
		title = session.Metadata.Title
	}
	textual := analysis.ScoreTitle(title)
	metadata := analysis.ScoreMetadata(session.Metadata)

	visual := analysis.CategoryScore{}
	if c.visual != nil && len(plan.CategoryAnchors) > 0 {
		visual = c.visual.Score(ctx.GetContext(), session.AssetId, plan.CategoryAnchors)
	}

	session.Category, session.CategoryConfidence = analysis.Fuse(textual, metadata, visual)

	c.GetSuccessCounter().Add(ctx.GetContext(), 1)
	c.pub.CategoryResolved(session.Category, session.CategoryConfidence)
	c.pub.Progress(0.25, "category resolved")
}
