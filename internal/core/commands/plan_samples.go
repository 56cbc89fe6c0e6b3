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

// PlanSamples computes the sampling schedule for the session's tier and
// stores it under PlanParam for every later step. An asset with unknown
// duration yields an empty plan; the chain still runs to completion with
// metadata-only results.
type PlanSamples struct {
	sessionCommand
	planner *analysis.Planner
	pub     *events.Publisher
}

// NewPlanSamples is the constructor for the PlanSamples command.
func NewPlanSamples(name string, planner *analysis.Planner, pub *events.Publisher) *PlanSamples {
	return &PlanSamples{
		sessionCommand: sessionCommand{BaseCommand: *cor.NewBaseCommand(name)},
		planner:        planner,
		pub:            pub,
	}
}

// Execute builds the sample plan from the loaded metadata.
func (c *PlanSamples) Execute(ctx cor.Context) {
	session := GetSession(ctx)

	var durationMs int64
	if session.Metadata != nil {
		durationMs = session.Metadata.DurationMs
	}

	plan := c.planner.Plan(durationMs, session.Tier)
	if plan.IsEmpty() {
		slog.Info("empty sample plan, analysis degrades to metadata only", "session", session.Id, "asset", session.AssetId)
	}

	ctx.Add(PlanParam, plan)
	c.GetSuccessCounter().Add(ctx.GetContext(), 1)
	c.pub.Progress(0.10, "sampling planned")
}

// GetPlan retrieves the sample plan from a workflow context, or an empty
// plan when the planning step has not run.
func GetPlan(ctx cor.Context) *analysis.SamplePlan {
	if p, ok := ctx.Get(PlanParam).(*analysis.SamplePlan); ok {
		return p
	}
	return &analysis.SamplePlan{}
}
