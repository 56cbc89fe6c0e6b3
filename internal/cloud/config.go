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

// Package cloud holds the Google Cloud integration layer of the content
// intelligence service: configuration, service clients, the Pub/Sub trigger
// listener, the Gemini capability adapters and the ffmpeg-backed frame
// provider. This file defines the TOML configuration structures.
package cloud

import "google.golang.org/genai"

// DefaultSafetySettings disables content blocking for the capability
// models. The pipeline analyzes a trusted media library, not user-submitted
// prompts.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// BigQueryDataSource names the dataset and tables analysis results land in.
type BigQueryDataSource struct {
	DatasetName    string `toml:"dataset"`
	ResultTable    string `toml:"result_table"`    // Completed analysis results, one row per session.
	EmbeddingTable string `toml:"embedding_table"` // Tag-text embeddings for vector search.
}

// PromptTemplates holds the per-capability prompt texts sent to Gemini.
type PromptTemplates struct {
	ScenePrompt   string `toml:"scene"`
	EmotionPrompt string `toml:"emotion"`
	FacePrompt    string `toml:"face"`
	ObjectPrompt  string `toml:"object"`
}

// VertexAiEmbeddingModel configures a text embedding model.
type VertexAiEmbeddingModel struct {
	Model                string `toml:"model"`
	MaxRequestsPerMinute int    `toml:"max_requests_per_minute"`
}

// VertexAiLLMModel configures one generative model used as a capability
// backend.
type VertexAiLLMModel struct {
	Model              string  `toml:"model"`
	SystemInstructions string  `toml:"system_instructions"`
	Temperature        float32 `toml:"temperature"`
	TopP               float32 `toml:"top_p"`
	TopK               float32 `toml:"top_k"`
	MaxTokens          int32   `toml:"max_tokens"`
	OutputFormat       string  `toml:"output_format"`
	RateLimit          int     `toml:"rate_limit"` // Requests per second.
}

// TopicSubscription configures one Pub/Sub subscription the service
// listens on.
type TopicSubscription struct {
	Name             string `toml:"name"`
	DeadLetterTopic  string `toml:"dead_letter_topic"`
	TimeoutInSeconds int    `toml:"timeout_in_seconds"`
}

// Storage names the GCS buckets the pipeline touches.
type Storage struct {
	AssetBucket       string `toml:"asset_bucket"`          // Source media files.
	KeyFrameBucket    string `toml:"key_frame_bucket"`      // Captured scene thumbnails.
	GCSFuseMountPoint string `toml:"gcs_fuse_mount_point"`  // Local mount backing ffmpeg reads.
	SignedUrlTTLMin   int    `toml:"signed_url_ttl_minutes"`
}

// Analysis holds the pipeline tuning knobs.
type Analysis struct {
	MaxScenes   int    `toml:"max_scenes"`
	PrivacyMode bool   `toml:"privacy_mode"` // Faces off by default; see NewConfig.
	FFmpegPath  string `toml:"ffmpeg_path"`
	FFprobePath string `toml:"ffprobe_path"`
	DefaultTier string `toml:"default_tier"`
}

// Config is the root configuration, loaded hierarchically from
// .env.toml plus an environment-specific override file.
type Config struct {
	Application struct {
		Name                      string `toml:"name"`
		GoogleProjectId           string `toml:"google_project_id"`
		GoogleLocation            string `toml:"location"`
		ThreadPoolSize            int    `toml:"thread_pool_size"`
		SignerServiceAccountEmail string `toml:"signer_service_account_email"`
	} `toml:"application"`
	Analysis           Analysis                          `toml:"analysis"`
	Storage            Storage                           `toml:"storage"`
	BigQueryDataSource BigQueryDataSource                `toml:"big_query_data_source"`
	PromptTemplates    PromptTemplates                   `toml:"prompt_templates"`
	TopicSubscriptions map[string]TopicSubscription      `toml:"topic_subscriptions"`
	EmbeddingModels    map[string]VertexAiEmbeddingModel `toml:"embedding_models"`
	CapabilityModels   map[string]VertexAiLLMModel       `toml:"capability_models"`
}

// NewConfig creates a Config with initialized maps and the privacy-first
// defaults. Privacy mode starts enabled and must be switched off
// explicitly in a config file.
func NewConfig() *Config {
	c := &Config{
		TopicSubscriptions: make(map[string]TopicSubscription),
		EmbeddingModels:    make(map[string]VertexAiEmbeddingModel),
		CapabilityModels:   make(map[string]VertexAiLLMModel),
	}
	c.Analysis.PrivacyMode = true
	c.Analysis.MaxScenes = 10
	return c
}
