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

// AssessQuality derives the technical quality profile from the session
// metadata. Professional tier only.
type AssessQuality struct {
	sessionCommand
	pub *events.Publisher
}

// NewAssessQuality is the constructor for the AssessQuality command.
func NewAssessQuality(name string, pub *events.Publisher) *AssessQuality {
	return &AssessQuality{
		sessionCommand: sessionCommand{BaseCommand: *cor.NewBaseCommand(name)},
		pub:            pub,
	}
}

// Execute attaches the quality metrics to the session.
func (c *AssessQuality) Execute(ctx cor.Context) {
	session := GetSession(ctx)

	session.Quality = analysis.AssessQuality(session.Metadata)

	c.GetSuccessCounter().Add(ctx.GetContext(), 1)
	c.pub.Progress(0.85, "quality assessed")
}
