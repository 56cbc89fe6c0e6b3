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
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// frameTempPrefix names the scratch files ffmpeg writes frames into.
const frameTempPrefix = "frame-extract-"

// FFmpegFrameProvider extracts single frames from assets with ffmpeg,
// reading the media through the GCS FUSE mount so nothing is downloaded
// ahead of time. It implements analysis.FrameProvider.
type FFmpegFrameProvider struct {
	config *Config
}

// NewFFmpegFrameProvider is the constructor for the ffmpeg frame provider.
func NewFFmpegFrameProvider(config *Config) *FFmpegFrameProvider {
	return &FFmpegFrameProvider{config: config}
}

// assetPath maps an asset id to its path under the FUSE mount.
func (f *FFmpegFrameProvider) assetPath(assetId string) string {
	return filepath.Join(f.config.Storage.GCSFuseMountPoint, f.config.Storage.AssetBucket, assetId)
}

// ExtractFrame seeks to the timestamp and decodes one frame as JPEG. A seek
// past the end of the stream produces no output file content; that case
// returns (nil, nil) so callers skip the sample without treating it as a
// capability failure.
func (f *FFmpegFrameProvider) ExtractFrame(ctx context.Context, assetId string, timestampMs int64) (*model.Frame, error) {
	input := f.assetPath(assetId)
	if !fileExists(input) {
		return nil, fmt.Errorf("asset not found at %s", input)
	}

	tempFile, err := os.CreateTemp("", frameTempPrefix+"*.jpg")
	if err != nil {
		return nil, err
	}
	_ = tempFile.Close()
	defer func() { _ = os.Remove(tempFile.Name()) }()

	seek := fmt.Sprintf("%d.%03d", timestampMs/1000, timestampMs%1000)
	args := strings.Split(fmt.Sprintf(
		"-y -hide_banner -loglevel error -ss %s -i %s -frames:v 1 -q:v 2 -f image2 %s",
		seek, input, tempFile.Name()), " ")

	cmd := exec.CommandContext(ctx, f.config.Analysis.FFmpegPath, args...)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame extraction failed: %w", err)
	}

	data, err := os.ReadFile(tempFile.Name())
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		// Seek past end of stream.
		return nil, nil
	}

	mimeType := "image/jpeg"
	if kind, err := filetype.Match(data); err == nil && filetype.IsImage(data) {
		mimeType = kind.MIME.Value
	}

	return &model.Frame{
		AssetId:     assetId,
		TimestampMs: timestampMs,
		MIMEType:    mimeType,
		Data:        data,
	}, nil
}
