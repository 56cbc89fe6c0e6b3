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

// This file defines the trigger message formats the service consumes over
// Pub/Sub: the explicit analysis-request message published by the library
// backend, and the GCS object-finalize notification emitted when a new
// asset lands in the bucket.
package cloud

import "strings"

// AnalysisTrigger is the explicit trigger message: analyze one asset at one
// tier. Tier is optional; an empty or unrecognized value falls back to the
// configured default.
type AnalysisTrigger struct {
	AssetId string `json:"asset_id"`
	Tier    string `json:"tier,omitempty"`
}

// GCSPubSubNotification is the subset of the GCS event notification payload
// the trigger path reads. A notification for a new object in the asset
// bucket starts a default-tier analysis of that object.
type GCSPubSubNotification struct {
	Kind        string                 `json:"kind"`
	Name        string                 `json:"name"`
	Bucket      string                 `json:"bucket"`
	ContentType string                 `json:"contentType"`
	TimeCreated string                 `json:"timeCreated"`
	Size        string                 `json:"size"`
	MediaLink   string                 `json:"mediaLink"`
	MetaData    map[string]interface{} `json:"metadata"`
}

// IsMediaObject reports whether the notification refers to a playable
// media object rather than a thumbnail or sidecar file.
func (n *GCSPubSubNotification) IsMediaObject() bool {
	return strings.HasPrefix(n.ContentType, "video/") || strings.HasPrefix(n.ContentType, "audio/")
}
