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

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/genai"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// resultRow is the flat BigQuery projection of one analysis result. The
// queryable columns are lifted out; the full result rides along as a JSON
// payload so nothing is lost to the flattening.
type resultRow struct {
	SessionId          string    `bigquery:"session_id"`
	AssetId            string    `bigquery:"asset_id"`
	Tier               string    `bigquery:"tier"`
	Category           string    `bigquery:"category"`
	CategoryConfidence float64   `bigquery:"category_confidence"`
	QualityScore       float64   `bigquery:"quality_score"`
	Tags               []string  `bigquery:"tags"`
	Payload            string    `bigquery:"payload"`
	ElapsedMs          int64     `bigquery:"elapsed_ms"`
	CompletedAt        time.Time `bigquery:"completed_at"`
}

// embeddingRow is one tag-embedding vector in the search table.
type embeddingRow struct {
	AssetId    string    `bigquery:"asset_id"`
	SessionId  string    `bigquery:"session_id"`
	TagText    string    `bigquery:"tag_text"`
	Embeddings []float64 `bigquery:"embeddings"`
}

// AnalysisService persists completed analysis results to BigQuery and
// serves lookups over them. It implements commands.ResultRepository. The
// embedding model is optional: without one, results persist but stay
// invisible to vector search.
type AnalysisService struct {
	BigqueryClient     *bigquery.Client
	StorageClient      *storage.Client
	IAMClient          *credentials.IamCredentialsClient
	EmbeddingModel     *genai.Models
	EmbeddingModelName string
	SignerEmail        string
	DatasetName        string
	ResultTable        string
	EmbeddingTable     string
}

// fqn returns the dot-separated fully qualified name of a table.
func (s *AnalysisService) fqn(table string) string {
	raw := s.BigqueryClient.Dataset(s.DatasetName).Table(table).FullyQualifiedName()
	return strings.Replace(raw, ":", ".", -1)
}

// Save streams the result row and, when an embedding model is configured,
// its tag embedding into BigQuery. A row insert error is returned to the
// caller; an embedding failure only degrades search and is logged instead.
func (s *AnalysisService) Save(ctx context.Context, result *model.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result %s: %w", result.SessionId, err)
	}

	tags := make([]string, 0, len(result.Tags))
	for _, t := range result.Tags {
		tags = append(tags, t.Text)
	}

	var qualityScore float64
	if result.Quality != nil {
		qualityScore = result.Quality.OverallScore
	}

	row := &resultRow{
		SessionId:          result.SessionId,
		AssetId:            result.AssetId,
		Tier:               string(result.Tier),
		Category:           string(result.Category),
		CategoryConfidence: result.CategoryConfidence,
		QualityScore:       qualityScore,
		Tags:               tags,
		Payload:            string(payload),
		ElapsedMs:          result.ElapsedMs,
		CompletedAt:        result.CompletedAt,
	}

	inserter := s.BigqueryClient.Dataset(s.DatasetName).Table(s.ResultTable).Inserter()
	if err := inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("bigquery insert failed for session '%s': %w", result.SessionId, err)
	}

	if s.EmbeddingModel != nil && len(tags) > 0 {
		if err := s.saveEmbedding(ctx, result, tags); err != nil {
			slog.Warn("tag embedding write failed, result is not searchable", "session", result.SessionId, "error", err)
		}
	}
	return nil
}

// saveEmbedding embeds the joined tag text and writes the vector row.
func (s *AnalysisService) saveEmbedding(ctx context.Context, result *model.AnalysisResult, tags []string) error {
	tagText := strings.Join(tags, ", ")
	contents := []*genai.Content{genai.NewContentFromText(tagText, genai.RoleUser)}

	resp, err := s.EmbeddingModel.EmbedContent(ctx, s.EmbeddingModelName, contents, nil)
	if err != nil {
		return fmt.Errorf("embedding generation failed: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return fmt.Errorf("embedding model returned no vectors")
	}

	values := resp.Embeddings[0].Values
	vector := make([]float64, 0, len(values))
	for _, v := range values {
		vector = append(vector, float64(v))
	}

	inserter := s.BigqueryClient.Dataset(s.DatasetName).Table(s.EmbeddingTable).Inserter()
	return inserter.Put(ctx, &embeddingRow{
		AssetId:    result.AssetId,
		SessionId:  result.SessionId,
		TagText:    tagText,
		Embeddings: vector,
	})
}

// Get retrieves one result by session id, decoded from its JSON payload.
func (s *AnalysisService) Get(ctx context.Context, sessionId string) (*model.AnalysisResult, error) {
	queryText := fmt.Sprintf(QryFindResultBySession, s.fqn(s.ResultTable), sessionId)
	return s.readOne(ctx, queryText)
}

// GetLatestForAsset retrieves the newest result for an asset.
func (s *AnalysisService) GetLatestForAsset(ctx context.Context, assetId string) (*model.AnalysisResult, error) {
	queryText := fmt.Sprintf(QryFindLatestResultByAsset, s.fqn(s.ResultTable), assetId)
	return s.readOne(ctx, queryText)
}

func (s *AnalysisService) readOne(ctx context.Context, queryText string) (*model.AnalysisResult, error) {
	itr, err := s.BigqueryClient.Query(queryText).Read(ctx)
	if err != nil {
		return nil, err
	}
	row := &resultRow{}
	if err := itr.Next(row); err != nil {
		return nil, err
	}
	result := &model.AnalysisResult{}
	if err := json.Unmarshal([]byte(row.Payload), result); err != nil {
		return nil, fmt.Errorf("failed to decode result payload for session '%s': %w", row.SessionId, err)
	}
	return result, nil
}

// GetByCategory lists the asset ids whose analyses landed in a category,
// newest first.
func (s *AnalysisService) GetByCategory(ctx context.Context, category model.ContentCategory, limit int) ([]string, error) {
	queryText := fmt.Sprintf(QryFindAssetsByCategory, s.fqn(s.ResultTable), string(category), limit)
	itr, err := s.BigqueryClient.Query(queryText).Read(ctx)
	if err != nil {
		return nil, err
	}

	assets := make([]string, 0)
	for {
		var row struct {
			AssetId string `bigquery:"asset_id"`
		}
		err := itr.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return assets, fmt.Errorf("failed to iterate results: %w", err)
		}
		assets = append(assets, row.AssetId)
	}
	return assets, nil
}

// GenerateSignedURL creates a time-limited URL for a stored keyframe so the
// player UI can render scene thumbnails without bucket credentials.
func (s *AnalysisService) GenerateSignedURL(ctx context.Context, gcsURI string, expires time.Duration) (string, error) {
	const prefix = "gs://"
	if !strings.HasPrefix(gcsURI, prefix) {
		return "", fmt.Errorf("invalid GCS URI format: %s", gcsURI)
	}
	path := strings.TrimPrefix(gcsURI, prefix)
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid GCS URI: unable to determine bucket and object from %s", gcsURI)
	}
	bucketName, objectName := parts[0], parts[1]

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "GET",
		Expires:        time.Now().Add(expires),
		GoogleAccessID: s.SignerEmail,
	}

	u, err := s.StorageClient.Bucket(bucketName).SignedURL(objectName, opts)
	if err != nil {
		return "", fmt.Errorf("Bucket(%q).SignedURL(%q): %w", bucketName, objectName, err)
	}
	return u, nil
}
