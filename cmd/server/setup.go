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
	"log"
	"log/slog"
	"os"

	"github.com/jaycherian/gcp-go-content-intel/internal/cloud"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/events"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/orchestrator"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/services"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/workflow"
)

// StateManager holds the shared components for the application.
type StateManager struct {
	config        *cloud.Config
	cloud         *cloud.ServiceClients
	orchestrator  *orchestrator.Orchestrator
	resultService *services.AnalysisService
	searchService *services.SearchService
}

var state = &StateManager{}

func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "local")
	return err
}

func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup env: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// capability fetches a configured generative model by name. A missing model
// leaves that capability nil, so its pipeline step degrades instead of
// blocking startup.
func capability(clients *cloud.ServiceClients, name string) *cloud.QuotaAwareGenerativeAIModel {
	m, ok := clients.CapabilityModels[name]
	if !ok {
		slog.Warn("capability model not configured", "name", name)
		return nil
	}
	return m
}

func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = cloudClients

	datasetName := config.BigQueryDataSource.DatasetName
	resultTableName := config.BigQueryDataSource.ResultTable
	embeddingTableName := config.BigQueryDataSource.EmbeddingTable

	embeddingModelName := ""
	if m, ok := config.EmbeddingModels["multi-lingual"]; ok {
		embeddingModelName = m.Model
	}

	state.resultService = &services.AnalysisService{
		BigqueryClient:     cloudClients.BigQueryClient,
		StorageClient:      cloudClients.StorageClient,
		IAMClient:          cloudClients.IAMClient,
		EmbeddingModel:     cloudClients.EmbeddingModels["multi-lingual"],
		EmbeddingModelName: embeddingModelName,
		SignerEmail:        config.Application.SignerServiceAccountEmail,
		DatasetName:        datasetName,
		ResultTable:        resultTableName,
		EmbeddingTable:     embeddingTableName,
	}

	state.searchService = services.NewSearchService(
		cloudClients.BigQueryClient,
		cloudClients.EmbeddingModels["multi-lingual"],
		embeddingModelName,
		datasetName,
		embeddingTableName)

	prompts := config.PromptTemplates
	deps := &workflow.Dependencies{
		Metadata:          cloud.NewFFprobeMetadataProvider(config),
		Frames:            cloud.NewFFmpegFrameProvider(config),
		SceneClassifier:   cloud.NewGeminiSceneClassifier(capability(cloudClients, "scene"), prompts.ScenePrompt),
		EmotionClassifier: cloud.NewGeminiEmotionClassifier(capability(cloudClients, "emotion"), prompts.EmotionPrompt),
		FaceDetector:      cloud.NewGeminiFaceDetector(capability(cloudClients, "face"), prompts.FacePrompt),
		ObjectDetector:    cloud.NewGeminiObjectDetector(capability(cloudClients, "object"), prompts.ObjectPrompt),
		Repository:        state.resultService,
		KeyFrames:         cloud.NewGCSKeyFrameStore(cloudClients.StorageClient, config.Storage.KeyFrameBucket),
		MaxScenes:         config.Analysis.MaxScenes,
		PrivacyMode:       config.Analysis.PrivacyMode,
	}

	state.orchestrator = orchestrator.New(deps, events.LogSink{})

	SetupListeners(ctx, config, cloudClients)
}
