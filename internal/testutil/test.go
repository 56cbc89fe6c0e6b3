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

// Package test provides shared helpers for the test suite: test-environment
// configuration loading, sample trigger payloads, and deterministic fake
// capability providers.
package test

import (
	"log"
	"os"
	"testing"

	"github.com/jaycherian/gcp-go-content-intel/internal/cloud"
)

// StateManager caches the test configuration so the TOML files are parsed
// once per test run.
type StateManager struct {
	config *cloud.Config
}

var state = &StateManager{}

// HandleErr fails the test when err is non-nil.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// GetTestTriggerMessageText returns an explicit analysis trigger payload as
// published by upstream ingestion.
func GetTestTriggerMessageText() string {
	return `{"asset_id": "test-trailer-001.mp4", "tier": "professional"}`
}

// GetTestGCSMessageText returns a GCS object-finalize notification for a
// media object, the implicit trigger form.
func GetTestGCSMessageText() string {
	return `{
  "kind": "storage#object",
  "id": "content_assets/test-trailer-001.mp4/1728615848664286",
  "name": "test-trailer-001.mp4",
  "bucket": "content_assets",
  "contentType": "video/mp4",
  "timeCreated": "2024-10-11T03:04:08.672Z",
  "size": "259348037",
  "mediaLink": "https://storage.googleapis.com/download/storage/v1/b/content_assets/o/test-trailer-001.mp4?generation=1728615848664286&alt=media",
  "metadata": { "touch": "18" }
}`
}

// GetTestGCSNonMediaMessageText returns a notification for an object the
// trigger reader must skip.
func GetTestGCSNonMediaMessageText() string {
	return `{
  "kind": "storage#object",
  "name": "manifest.json",
  "bucket": "content_assets",
  "contentType": "application/json",
  "size": "1024"
}`
}

// SetupOS points the config loader at the test configuration files.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is the singleton accessor for the test configuration.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}
