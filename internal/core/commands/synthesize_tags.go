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

// SynthesizeTags derives the searchable tag list from everything the
// earlier steps accumulated. Professional tier only.
type SynthesizeTags struct {
	sessionCommand
	pub *events.Publisher
}

// NewSynthesizeTags is the constructor for the SynthesizeTags command.
func NewSynthesizeTags(name string, pub *events.Publisher) *SynthesizeTags {
	return &SynthesizeTags{
		sessionCommand: sessionCommand{BaseCommand: *cor.NewBaseCommand(name)},
		pub:            pub,
	}
}

// Execute attaches the synthesized tags to the session.
func (c *SynthesizeTags) Execute(ctx cor.Context) {
	session := GetSession(ctx)

	session.Tags = analysis.SynthesizeTags(session.Category, session.Objects, session.Scenes, session.Faces)

	c.GetSuccessCounter().Add(ctx.GetContext(), 1)
	c.pub.TagsGenerated(session.Tags)
	c.pub.Progress(0.90, "tags generated")
}
