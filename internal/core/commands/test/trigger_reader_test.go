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

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/commands"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/cor"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
	test "github.com/jaycherian/gcp-go-content-intel/internal/testutil"
)

// recordingStarter captures every StartAnalysis call.
type recordingStarter struct {
	assetIds []string
	tiers    []model.AnalysisTier
}

func (r *recordingStarter) StartAnalysis(_ context.Context, assetId string, tier model.AnalysisTier) string {
	r.assetIds = append(r.assetIds, assetId)
	r.tiers = append(r.tiers, tier)
	return "session-123"
}

func executeTrigger(starter *recordingStarter, payload string) cor.Context {
	reader := commands.NewTriggerReader("trigger-reader", starter, model.TierBasic)
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, payload)
	reader.Execute(chainCtx)
	return chainCtx
}

// An explicit trigger message carries its own tier.
func TestTriggerReaderExplicitTrigger(t *testing.T) {
	starter := &recordingStarter{}
	chainCtx := executeTrigger(starter, test.GetTestTriggerMessageText())

	assert.False(t, chainCtx.HasErrors())
	assert.Equal(t, []string{"test-trailer-001.mp4"}, starter.assetIds)
	assert.Equal(t, []model.AnalysisTier{model.TierProfessional}, starter.tiers)
	assert.Equal(t, "session-123", chainCtx.Get(cor.CtxOut))
}

// An explicit trigger without a tier starts at the configured default.
func TestTriggerReaderDefaultTier(t *testing.T) {
	starter := &recordingStarter{}
	chainCtx := executeTrigger(starter, `{"asset_id": "some-asset.mp4"}`)

	assert.False(t, chainCtx.HasErrors())
	assert.Equal(t, []model.AnalysisTier{model.TierBasic}, starter.tiers)
}

// A GCS object-finalize notification for a media object starts a
// default-tier analysis of that object.
func TestTriggerReaderGCSNotification(t *testing.T) {
	starter := &recordingStarter{}
	chainCtx := executeTrigger(starter, test.GetTestGCSMessageText())

	assert.False(t, chainCtx.HasErrors())
	assert.Equal(t, []string{"test-trailer-001.mp4"}, starter.assetIds)
	assert.Equal(t, []model.AnalysisTier{model.TierBasic}, starter.tiers)
}

// Notifications for non-media objects are skipped without error so the
// message acks instead of redelivering forever.
func TestTriggerReaderSkipsNonMediaObjects(t *testing.T) {
	starter := &recordingStarter{}
	chainCtx := executeTrigger(starter, test.GetTestGCSNonMediaMessageText())

	assert.False(t, chainCtx.HasErrors())
	assert.Empty(t, starter.assetIds)
}

// An unparseable payload records a chain error, which leaves the message
// unacked for redelivery.
func TestTriggerReaderRejectsGarbage(t *testing.T) {
	starter := &recordingStarter{}
	chainCtx := executeTrigger(starter, "not a json payload")

	assert.True(t, chainCtx.HasErrors())
	assert.Empty(t, starter.assetIds)
}

// The reader only executes when handed a string payload and a starter.
func TestTriggerReaderIsExecutable(t *testing.T) {
	reader := commands.NewTriggerReader("trigger-reader", &recordingStarter{}, model.TierBasic)

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	assert.False(t, reader.IsExecutable(chainCtx))

	chainCtx.Add(cor.CtxIn, test.GetTestTriggerMessageText())
	assert.True(t, reader.IsExecutable(chainCtx))
}
