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
	"time"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/cor"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/events"
)

// AssembleResult folds the session accumulator into the immutable
// AnalysisResult and stores it under ResultParam for persistence and for
// the orchestrator's completion event. This is the point where the session
// stops being mutable.
type AssembleResult struct {
	sessionCommand
	pub *events.Publisher
}

// NewAssembleResult is the constructor for the AssembleResult command.
func NewAssembleResult(name string, pub *events.Publisher) *AssembleResult {
	return &AssembleResult{
		sessionCommand: sessionCommand{BaseCommand: *cor.NewBaseCommand(name)},
		pub:            pub,
	}
}

// Execute snapshots the session.
func (c *AssembleResult) Execute(ctx cor.Context) {
	session := GetSession(ctx)

	result := session.Snapshot(time.Now())
	ctx.Add(ResultParam, result)

	c.GetSuccessCounter().Add(ctx.GetContext(), 1)
	c.pub.Progress(0.95, "result assembled")
}
