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

package main

import (
	"context"
	"log/slog"

	"github.com/jaycherian/gcp-go-content-intel/internal/cloud"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/commands"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// SetupListeners attaches a trigger reader to every configured Pub/Sub
// subscription and starts listening. Each inbound message resolves to an
// asset id and starts an analysis session at the configured default tier.
func SetupListeners(ctx context.Context, config *cloud.Config, clients *cloud.ServiceClients) {
	defaultTier := model.ParseTier(config.Analysis.DefaultTier)
	for name, listener := range clients.PubSubListeners {
		reader := commands.NewTriggerReader("trigger-reader-"+name, state.orchestrator, defaultTier)
		listener.SetCommand(reader)
		listener.Listen(ctx)
		slog.Info("listening for analysis triggers", "subscription", name)
	}
}
