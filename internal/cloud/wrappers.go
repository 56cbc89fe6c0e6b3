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
	"errors"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type retryKey struct{}

// QuotaAwareGenerativeAIModel decorates a generative model with rate
// limiting and retries. Vertex AI enforces per-minute quotas, and the
// pipeline can fire a burst of per-frame classifications at once; the
// limiter keeps those bursts inside quota instead of converting them into
// errors.
type QuotaAwareGenerativeAIModel struct {
	GenerativeContentConfig *genai.GenerateContentConfig
	ModelName               string
	ModelHandle             *genai.Models
	RateLimit               rate.Limiter
}

// NewQuotaAwareModel wraps a model configuration with a limiter allowing a
// burst of requestsPerSecond and refilling one token per second.
func NewQuotaAwareModel(wrapped *genai.GenerateContentConfig, name string, handle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	return &QuotaAwareGenerativeAIModel{
		GenerativeContentConfig: wrapped,
		ModelName:               name,
		ModelHandle:             handle,
		RateLimit:               *rate.NewLimiter(rate.Every(time.Second/1), requestsPerSecond),
	}
}

// GenerateContent runs one generation under the rate limiter, retrying a
// failed call up to three times with a backoff pause.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, content []*genai.Content) (resp *genai.GenerateContentResponse, err error) {
	if err := q.RateLimit.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err = q.ModelHandle.GenerateContent(ctx, q.ModelName, content, q.GenerativeContentConfig)
	if err == nil {
		return resp, nil
	}

	retryCount, _ := ctx.Value(retryKey{}).(int)
	if retryCount >= 3 {
		return nil, errors.New("failed generation on max retries")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Second):
	}
	return q.GenerateContent(context.WithValue(ctx, retryKey{}, retryCount+1), content)
}
