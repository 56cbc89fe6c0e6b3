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

// DetectObjects runs the object aggregator over the object samples.
type DetectObjects struct {
	sessionCommand
	aggregator *analysis.ObjectAggregator
	pub        *events.Publisher
}

// NewDetectObjects is the constructor for the DetectObjects command.
func NewDetectObjects(name string, aggregator *analysis.ObjectAggregator, pub *events.Publisher) *DetectObjects {
	return &DetectObjects{
		sessionCommand: sessionCommand{BaseCommand: *cor.NewBaseCommand(name)},
		aggregator:     aggregator,
		pub:            pub,
	}
}

// Execute aggregates objects onto the session.
func (c *DetectObjects) Execute(ctx cor.Context) {
	session := GetSession(ctx)
	plan := GetPlan(ctx)

	session.Objects = c.aggregator.Aggregate(ctx.GetContext(), session.AssetId, plan.ObjectSamples)

	c.GetSuccessCounter().Add(ctx.GetContext(), 1)
	c.pub.ObjectsDetected(session.Objects)
	c.pub.Progress(0.70, "objects detected")
}
