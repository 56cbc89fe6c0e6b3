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
	"fmt"
	"log/slog"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/cor"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// PersistResult hands the assembled result to the repository. Unlike every
// capability step this one records a context error on failure: a finished
// analysis that never reaches storage is user-visible data loss and must
// surface through the completion event rather than degrade silently.
type PersistResult struct {
	cor.BaseCommand
	repository ResultRepository
}

// NewPersistResult is the constructor for the PersistResult command.
func NewPersistResult(name string, repository ResultRepository) *PersistResult {
	return &PersistResult{BaseCommand: *cor.NewBaseCommand(name), repository: repository}
}

// IsExecutable requires the assembled result to be present.
func (c *PersistResult) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil && ctx.Get(ResultParam) != nil
}

// Execute writes the result through the repository.
func (c *PersistResult) Execute(ctx cor.Context) {
	result := ctx.Get(ResultParam).(*model.AnalysisResult)

	if err := c.repository.Save(ctx.GetContext(), result); err != nil {
		slog.Error("failed to persist analysis result", "session", result.SessionId, "asset", result.AssetId, "error", err)
		c.GetErrorCounter().Add(ctx.GetContext(), 1)
		ctx.AddError(c.GetName(), fmt.Errorf("persist failed for session '%s': %w", result.SessionId, err))
		return
	}

	c.GetSuccessCounter().Add(ctx.GetContext(), 1)
	slog.Info("analysis result persisted", "session", result.SessionId, "asset", result.AssetId)
}
