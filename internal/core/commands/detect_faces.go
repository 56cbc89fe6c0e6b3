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

// DetectFaces runs the face aggregator over the face samples. The privacy
// gate lives inside the aggregator, so with privacy mode on this step still
// runs and still emits its events, just with an empty face list.
type DetectFaces struct {
	sessionCommand
	aggregator *analysis.FaceAggregator
	pub        *events.Publisher
}

// NewDetectFaces is the constructor for the DetectFaces command.
func NewDetectFaces(name string, aggregator *analysis.FaceAggregator, pub *events.Publisher) *DetectFaces {
	return &DetectFaces{
		sessionCommand: sessionCommand{BaseCommand: *cor.NewBaseCommand(name)},
		aggregator:     aggregator,
		pub:            pub,
	}
}

// Execute aggregates faces onto the session.
func (c *DetectFaces) Execute(ctx cor.Context) {
	session := GetSession(ctx)
	plan := GetPlan(ctx)

	session.Faces = c.aggregator.Aggregate(ctx.GetContext(), session.AssetId, plan.FaceSamples)

	c.GetSuccessCounter().Add(ctx.GetContext(), 1)
	c.pub.FacesDetected(session.Faces)
	c.pub.Progress(0.60, "faces detected")
}
