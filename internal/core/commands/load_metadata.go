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

// LoadMetadata is the first pipeline step: it resolves the asset's
// structural metadata and attaches it to the session. A metadata failure is
// not fatal — the session continues with nil metadata, which downstream
// degrades to an empty sampling schedule and metadata-only categorization.
type LoadMetadata struct {
	sessionCommand
	provider analysis.MetadataProvider
	pub      *events.Publisher
}

// NewLoadMetadata is the constructor for the LoadMetadata command.
func NewLoadMetadata(name string, provider analysis.MetadataProvider, pub *events.Publisher) *LoadMetadata {
	return &LoadMetadata{
		sessionCommand: sessionCommand{BaseCommand: *cor.NewBaseCommand(name)},
		provider:       provider,
		pub:            pub,
	}
}

// Execute loads the metadata for the session's asset.
func (c *LoadMetadata) Execute(ctx cor.Context) {
	session := GetSession(ctx)

	meta, err := c.provider.Get(ctx.GetContext(), session.AssetId)
	if err != nil {
		slog.Warn("asset metadata unavailable, continuing degraded", "asset", session.AssetId, "error", err)
		c.GetErrorCounter().Add(ctx.GetContext(), 1)
		c.pub.Progress(0.05, "metadata unavailable")
		return
	}

	session.Metadata = meta
	c.GetSuccessCounter().Add(ctx.GetContext(), 1)
	c.pub.Progress(0.05, "metadata loaded")
}
