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

package cloud

import (
	"context"

	"cloud.google.com/go/bigquery"
	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"google.golang.org/genai"
)

// ServiceClients is the dependency container for every external Google
// Cloud connection the service holds: storage, Pub/Sub, BigQuery, IAM
// signing, and the configured Gemini capability and embedding models. It is
// built once at startup and shared.
type ServiceClients struct {
	StorageClient    *storage.Client
	PubsubClient     *pubsub.Client
	GenAIClient      *genai.Client
	BigQueryClient   *bigquery.Client
	IAMClient        *credentials.IamCredentialsClient
	PubSubListeners  map[string]*PubSubListener
	EmbeddingModels  map[string]*genai.Models
	CapabilityModels map[string]*QuotaAwareGenerativeAIModel
}

// Close releases the client connections that expose a close. Useful in
// tests and controlled shutdowns; in production the root context owns the
// lifecycle.
func (c *ServiceClients) Close() {
	_ = c.StorageClient.Close()
	_ = c.PubsubClient.Close()
	_ = c.BigQueryClient.Close()
	if c.IAMClient != nil {
		_ = c.IAMClient.Close()
	}
}

// NewCloudServiceClients initializes every external client from the
// configuration. Listeners are created without commands; the workflows
// attach them during server setup.
func NewCloudServiceClients(ctx context.Context, config *Config) (cloud *ServiceClients, err error) {
	sc, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	pc, err := pubsub.NewClient(ctx, config.Application.GoogleProjectId)
	if err != nil {
		return nil, err
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  config.Application.GoogleProjectId,
		Location: config.Application.GoogleLocation,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, err
	}

	bc, err := bigquery.NewClient(ctx, config.Application.GoogleProjectId)
	if err != nil {
		return nil, err
	}

	iamClient, err := credentials.NewIamCredentialsClient(ctx)
	if err != nil {
		return nil, err
	}

	subscriptions := make(map[string]*PubSubListener)
	for subKey := range config.TopicSubscriptions {
		values := config.TopicSubscriptions[subKey]
		actual, err := NewPubSubListener(pc, values.Name, nil)
		if err != nil {
			return nil, err
		}
		subscriptions[subKey] = actual
	}

	embeddingModels := make(map[string]*genai.Models)
	for embKey := range config.EmbeddingModels {
		embeddingModels[embKey] = gc.Models
	}

	// Each configured capability model gets its settings applied and is
	// wrapped in the quota-aware decorator.
	capabilityModels := make(map[string]*QuotaAwareGenerativeAIModel)
	for cmKey := range config.CapabilityModels {
		values := config.CapabilityModels[cmKey]
		cfg := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			ResponseMIMEType:  values.OutputFormat,
		}
		capabilityModels[cmKey] = NewQuotaAwareModel(cfg, values.Model, gc.Models, values.RateLimit)
	}

	return &ServiceClients{
		StorageClient:    sc,
		PubsubClient:     pc,
		GenAIClient:      gc,
		BigQueryClient:   bc,
		IAMClient:        iamClient,
		PubSubListeners:  subscriptions,
		EmbeddingModels:  embeddingModels,
		CapabilityModels: capabilityModels,
	}, nil
}
