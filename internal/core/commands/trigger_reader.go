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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jaycherian/gcp-go-content-intel/internal/cloud"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/cor"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// AnalysisStarter is the slice of the orchestrator the trigger needs. It is
// an interface so this package does not import the orchestrator.
type AnalysisStarter interface {
	StartAnalysis(ctx context.Context, assetId string, tier model.AnalysisTier) string
}

// TriggerReader is the entry command for Pub/Sub driven analysis. It accepts
// either an explicit AnalysisTrigger payload or a raw GCS object-finalize
// notification, resolves the asset id and tier, and starts a session.
//
// GCS notifications carry no tier, so they start at the default tier.
// Non-media objects are acked and skipped without error.
type TriggerReader struct {
	cor.BaseCommand
	starter     AnalysisStarter
	defaultTier model.AnalysisTier
}

func NewTriggerReader(name string, starter AnalysisStarter, defaultTier model.AnalysisTier) *TriggerReader {
	if defaultTier == "" {
		defaultTier = model.TierBasic
	}
	return &TriggerReader{
		BaseCommand: *cor.NewBaseCommand(name),
		starter:     starter,
		defaultTier: defaultTier,
	}
}

func (c *TriggerReader) IsExecutable(context cor.Context) bool {
	_, ok := context.Get(c.GetInputParam()).(string)
	return ok && c.starter != nil
}

func (c *TriggerReader) Execute(context cor.Context) {
	in := context.Get(c.GetInputParam()).(string)

	assetId, tier, ok, err := c.resolve([]byte(in))
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), err)
		return
	}
	if !ok {
		// Not an analyzable payload (e.g. a non-media GCS object). Ack and
		// move on.
		c.GetSuccessCounter().Add(context.GetContext(), 1)
		return
	}

	sessionId := c.starter.StartAnalysis(context.GetContext(), assetId, tier)
	slog.Info("trigger started analysis", "asset", assetId, "tier", tier, "session", sessionId)
	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(c.GetOutputParam(), sessionId)
}

// resolve parses the message body. The explicit trigger form wins; a GCS
// notification is recognized by its storage#object kind.
func (c *TriggerReader) resolve(data []byte) (assetId string, tier model.AnalysisTier, ok bool, err error) {
	var trigger cloud.AnalysisTrigger
	if jsonErr := json.Unmarshal(data, &trigger); jsonErr == nil && trigger.AssetId != "" {
		tier = model.ParseTier(trigger.Tier)
		if trigger.Tier == "" {
			tier = c.defaultTier
		}
		return trigger.AssetId, tier, true, nil
	}

	var notification cloud.GCSPubSubNotification
	if jsonErr := json.Unmarshal(data, &notification); jsonErr != nil {
		return "", "", false, fmt.Errorf("unrecognized trigger payload: %w", jsonErr)
	}
	if notification.Name == "" {
		return "", "", false, fmt.Errorf("trigger payload names no object")
	}
	if !notification.IsMediaObject() {
		slog.Debug("skipping non-media object", "object", notification.Name, "content_type", notification.ContentType)
		return "", "", false, nil
	}
	return notification.Name, c.defaultTier, true, nil
}
