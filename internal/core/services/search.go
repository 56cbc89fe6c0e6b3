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

// Package services holds the persistence and lookup layer over BigQuery:
// the analysis result repository and a semantic search over tag embeddings.
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/genai"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// SearchService answers "find assets like this" questions. It embeds the
// query text with the configured model and runs a vector search over the
// tag-embedding table.
type SearchService struct {
	BigqueryClient *bigquery.Client
	EmbeddingModel *genai.Models
	ModelName      string
	DatasetName    string
	EmbeddingTable string
}

func NewSearchService(
	bigqueryClient *bigquery.Client,
	embeddingModel *genai.Models,
	modelName string,
	datasetName string,
	embeddingTable string) *SearchService {
	return &SearchService{
		BigqueryClient: bigqueryClient,
		EmbeddingModel: embeddingModel,
		ModelName:      modelName,
		DatasetName:    datasetName,
		EmbeddingTable: embeddingTable,
	}
}

// tableFQN returns the dot-separated fully qualified embedding table name.
func (s *SearchService) tableFQN() string {
	raw := s.BigqueryClient.Dataset(s.DatasetName).Table(s.EmbeddingTable).FullyQualifiedName()
	return strings.Replace(raw, ":", ".", -1)
}

// SearchByQuery embeds a natural language query and returns the closest
// analyzed assets ordered by vector distance.
func (s *SearchService) SearchByQuery(ctx context.Context, query string, maxResults int) ([]*model.SearchResult, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(query, genai.RoleUser),
	}
	resp, err := s.EmbeddingModel.EmbedContent(ctx, s.ModelName, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to embed search query: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("embedding model returned no vectors")
	}
	return s.searchByVector(ctx, resp.Embeddings[0].Values, maxResults)
}

// FindSimilar embeds the tag set of an existing result and searches with it,
// giving "more like this asset" behavior.
func (s *SearchService) FindSimilar(ctx context.Context, result *model.AnalysisResult, maxResults int) ([]*model.SearchResult, error) {
	if len(result.Tags) == 0 {
		return []*model.SearchResult{}, nil
	}
	tags := make([]string, 0, len(result.Tags))
	for _, t := range result.Tags {
		tags = append(tags, t.Text)
	}
	return s.SearchByQuery(ctx, strings.Join(tags, ", "), maxResults)
}

func (s *SearchService) searchByVector(ctx context.Context, vector []float32, maxResults int) ([]*model.SearchResult, error) {
	// The vector is inlined into the query text as a literal array, matching
	// the VECTOR_SEARCH subquery shape.
	parts := make([]string, 0, len(vector))
	for _, f := range vector {
		parts = append(parts, strconv.FormatFloat(float64(f), 'f', -1, 64))
	}

	queryText := fmt.Sprintf(QryTagKnn, s.tableFQN(), strings.Join(parts, ","), maxResults)
	itr, err := s.BigqueryClient.Query(queryText).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("vector search query failed: %w", err)
	}

	out := make([]*model.SearchResult, 0)
	for {
		var row struct {
			AssetId   string  `bigquery:"asset_id"`
			SessionId string  `bigquery:"session_id"`
			Distance  float64 `bigquery:"distance"`
		}
		err := itr.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return out, fmt.Errorf("failed to iterate search results: %w", err)
		}
		out = append(out, &model.SearchResult{
			AssetId:   row.AssetId,
			SessionId: row.SessionId,
			Distance:  row.Distance,
		})
	}
	return out, nil
}
