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

// Package commands holds the concrete pipeline steps that run inside an
// analysis workflow chain. Each command reads the shared session
// accumulator from the context, performs one analysis step, mutates the
// accumulator, and reports progress through the session's event publisher.
//
// Error posture: capability-backed steps degrade in place (empty or
// zero-confidence result, logged, chain continues). Only the persistence
// step records a context error, because losing a finished result is the one
// failure the caller must see.
package commands

import (
	"context"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/cor"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// Well-known context keys shared by the pipeline commands. The session and
// plan are deliberately kept out of the CtxIn/CtxOut piping so every step
// can reach them regardless of its position in the chain.
const (
	SessionParam = "__ANALYSIS_SESSION__"
	PlanParam    = "__SAMPLE_PLAN__"
	ResultParam  = "__ANALYSIS_RESULT__"
)

// GetSession retrieves the session accumulator from a workflow context, or
// nil when no session has been attached.
func GetSession(ctx cor.Context) *model.AnalysisSession {
	if s, ok := ctx.Get(SessionParam).(*model.AnalysisSession); ok {
		return s
	}
	return nil
}

// ResultRepository is the persistence collaborator of the pipeline. The
// production implementation writes to BigQuery; tests substitute an
// in-memory repository.
type ResultRepository interface {
	Save(ctx context.Context, result *model.AnalysisResult) error
}

// KeyFrameStore persists a representative frame for a detected scene and
// returns its addressable URI. Implementations may be nil-functional: a nil
// store disables keyframe capture without disabling scene detection.
type KeyFrameStore interface {
	Store(ctx context.Context, assetId, sceneId string, frame *model.Frame) (string, error)
}

// sessionCommand is the shared base of all pipeline steps: executable
// whenever a session is attached to the context.
type sessionCommand struct {
	cor.BaseCommand
}

func (s *sessionCommand) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil && GetSession(ctx) != nil
}
