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
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

// ffprobeOutput is the subset of `ffprobe -print_format json` the metadata
// provider reads.
type ffprobeOutput struct {
	Format struct {
		DurationSec string            `json:"duration"`
		BitRate     string            `json:"bit_rate"`
		Tags        map[string]string `json:"tags"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		SampleRate   string `json:"sample_rate"`
		Channels     int    `json:"channels"`
	} `json:"streams"`
}

// FFprobeMetadataProvider resolves asset metadata by probing the media file
// through the GCS FUSE mount. It implements analysis.MetadataProvider.
type FFprobeMetadataProvider struct {
	config *Config
}

// NewFFprobeMetadataProvider is the constructor for the metadata provider.
func NewFFprobeMetadataProvider(config *Config) *FFprobeMetadataProvider {
	return &FFprobeMetadataProvider{config: config}
}

// Get probes the asset and maps the stream info onto AssetMetadata. Title
// and genre come from the container tags when present.
func (p *FFprobeMetadataProvider) Get(ctx context.Context, assetId string) (*model.AssetMetadata, error) {
	input := fmt.Sprintf("%s/%s/%s", p.config.Storage.GCSFuseMountPoint, p.config.Storage.AssetBucket, assetId)
	if !fileExists(input) {
		return nil, fmt.Errorf("asset not found at %s", input)
	}

	args := strings.Split("-v quiet -print_format json -show_format -show_streams", " ")
	args = append(args, input)
	out, err := exec.CommandContext(ctx, p.config.Analysis.FFprobePath, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w", assetId, err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output for %s: %w", assetId, err)
	}

	meta := &model.AssetMetadata{AssetId: assetId}
	if sec, err := strconv.ParseFloat(probe.Format.DurationSec, 64); err == nil {
		meta.DurationMs = int64(sec * 1000)
	}
	if bps, err := strconv.ParseInt(probe.Format.BitRate, 10, 64); err == nil {
		meta.BitrateBps = bps
	}
	for key, value := range probe.Format.Tags {
		switch strings.ToLower(key) {
		case "title":
			meta.Title = value
		case "genre":
			meta.Genre = value
		}
	}

	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "video":
			if stream.Width > 0 && stream.Height > 0 {
				meta.Resolution = fmt.Sprintf("%dx%d", stream.Width, stream.Height)
			}
			meta.FrameRate = parseFrameRate(stream.AvgFrameRate)
		case "audio":
			meta.Audio.Codec = stream.CodecName
			meta.Audio.Channels = stream.Channels
			if hz, err := strconv.Atoi(stream.SampleRate); err == nil {
				meta.Audio.SampleRateHz = hz
			}
		}
	}
	meta.Audio.Score = audioScore(meta.Audio)

	return meta, nil
}

// parseFrameRate evaluates ffprobe's fractional rate strings ("30000/1001").
func parseFrameRate(in string) float64 {
	parts := strings.SplitN(in, "/", 2)
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	if len(parts) == 1 {
		return num
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0
	}
	return num / den
}

// audioScore folds the audio stream properties into the [0,1] sub-score the
// quality assessor consumes: full marks at 48kHz stereo, proportionally
// less below.
func audioScore(a model.AudioMetrics) float64 {
	if a.SampleRateHz == 0 && a.Channels == 0 {
		return 0
	}
	rateScore := float64(a.SampleRateHz) / 48_000.0
	if rateScore > 1 {
		rateScore = 1
	}
	channelScore := float64(a.Channels) / 2.0
	if channelScore > 1 {
		channelScore = 1
	}
	return 0.5*rateScore + 0.5*channelScore
}
