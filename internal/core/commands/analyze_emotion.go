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

// AnalyzeEmotion produces the emotional summary from the emotion samples.
// Professional tier only.
type AnalyzeEmotion struct {
	sessionCommand
	analyzer *analysis.EmotionAnalyzer
	pub      *events.Publisher
}

// NewAnalyzeEmotion is the constructor for the AnalyzeEmotion command.
func NewAnalyzeEmotion(name string, analyzer *analysis.EmotionAnalyzer, pub *events.Publisher) *AnalyzeEmotion {
	return &AnalyzeEmotion{
		sessionCommand: sessionCommand{BaseCommand: *cor.NewBaseCommand(name)},
		analyzer:       analyzer,
		pub:            pub,
	}
}

// Execute attaches the emotional summary to the session.
func (c *AnalyzeEmotion) Execute(ctx cor.Context) {
	session := GetSession(ctx)
	plan := GetPlan(ctx)

	session.Emotional = c.analyzer.Analyze(ctx.GetContext(), session.AssetId, plan.EmotionSamples)

	c.GetSuccessCounter().Add(ctx.GetContext(), 1)
	c.pub.Progress(0.80, "emotional summary computed")
}
