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

// Package cloud_test covers the hierarchical TOML configuration loader and
// the privacy-first defaults.
package cloud_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zeebo/assert"

	"github.com/jaycherian/gcp-go-content-intel/internal/cloud"
)

const baseToml = `
[application]
name = "content-intel"
google_project_id = "test-project"

[analysis]
max_scenes = 10
privacy_mode = true
default_tier = "basic"

[capability_models.scene]
model = "gemini-2.0-flash"
rate_limit = 2
max_tokens = 8192
temperature = 0.2
output_format = "application/json"
`

const overrideToml = `
[application]
name = "content-intel-test"

[analysis]
max_scenes = 5
`

// Privacy mode starts enabled and can only be switched off explicitly.
func TestNewConfigDefaults(t *testing.T) {
	config := cloud.NewConfig()

	assert.True(t, config.Analysis.PrivacyMode)
	assert.Equal(t, 10, config.Analysis.MaxScenes)
	assert.NotNil(t, config.TopicSubscriptions)
	assert.NotNil(t, config.EmbeddingModels)
	assert.NotNil(t, config.CapabilityModels)
}

// The environment-specific file loads on top of the base file; values in
// the override win, untouched values survive.
func TestLoadConfigHierarchy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.toml"), baseToml)
	writeFile(t, filepath.Join(dir, ".env.test.toml"), overrideToml)

	t.Setenv(cloud.EnvConfigFilePrefix, dir+string(os.PathSeparator))
	t.Setenv(cloud.EnvConfigRuntime, "test")

	config := cloud.NewConfig()
	cloud.LoadConfig(&config)

	assert.Equal(t, "content-intel-test", config.Application.Name)
	assert.Equal(t, "test-project", config.Application.GoogleProjectId)
	assert.Equal(t, 5, config.Analysis.MaxScenes)
	assert.Equal(t, "basic", config.Analysis.DefaultTier)

	scene, ok := config.CapabilityModels["scene"]
	assert.True(t, ok)
	assert.Equal(t, "gemini-2.0-flash", scene.Model)
	assert.Equal(t, 2, scene.RateLimit)
	assert.Equal(t, "application/json", scene.OutputFormat)
}

// Missing files are not an error: the loader keeps whatever defaults the
// config already carries.
func TestLoadConfigMissingFiles(t *testing.T) {
	t.Setenv(cloud.EnvConfigFilePrefix, filepath.Join(t.TempDir(), "nowhere")+string(os.PathSeparator))
	t.Setenv(cloud.EnvConfigRuntime, "test")

	config := cloud.NewConfig()
	cloud.LoadConfig(&config)

	assert.True(t, config.Analysis.PrivacyMode)
	assert.Equal(t, 10, config.Analysis.MaxScenes)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
