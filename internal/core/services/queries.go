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

// Package services is the data access layer over BigQuery and GCS: result
// persistence, lookups and the tag-embedding vector search. This file
// centralizes the BigQuery SQL templates; the format verbs are filled in at
// runtime with fully qualified table names and values.
package services

const (
	// QryTagKnn is the k-nearest-neighbor vector search over the tag
	// embedding table. The query embedding is injected as a comma-separated
	// float list; results come back closest-first by Euclidean distance.
	QryTagKnn = "SELECT base.asset_id, base.session_id, distance FROM VECTOR_SEARCH(TABLE `%s`, 'embeddings', (SELECT [ %s ] as embed), top_k => %d, distance_type => 'EUCLIDEAN') ORDER BY distance asc"

	// QryFindResultBySession looks up one persisted result row by its
	// session id.
	QryFindResultBySession = "SELECT * FROM `%s` WHERE session_id = '%s'"

	// QryFindLatestResultByAsset returns the most recent completed result
	// for an asset. Re-analysis appends rows rather than updating, so the
	// newest completion wins.
	QryFindLatestResultByAsset = "SELECT * FROM `%s` WHERE asset_id = '%s' ORDER BY completed_at DESC LIMIT 1"

	// QryFindAssetsByCategory lists the assets whose latest analysis landed
	// in a category, newest first.
	QryFindAssetsByCategory = "SELECT asset_id FROM `%s` WHERE category = '%s' ORDER BY completed_at DESC LIMIT %d"
)
