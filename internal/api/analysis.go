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

// Package api defines the HTTP surface of the analysis server: session
// control, result retrieval, and semantic search over analyzed assets.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/orchestrator"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/services"
)

// Services bundles the handler dependencies. BaseCtx is the server-lifetime
// context analysis sessions run under: a session outlives the request that
// starts it, so it must never inherit the request context, which net/http
// cancels the moment the handler returns.
type Services struct {
	Orchestrator *orchestrator.Orchestrator
	Results      *services.AnalysisService
	Search       *services.SearchService
	SignedUrlTTL time.Duration
	BaseCtx      context.Context
}

// sessionContext returns the context new sessions derive from.
func (s *Services) sessionContext() context.Context {
	if s.BaseCtx != nil {
		return s.BaseCtx
	}
	return context.Background()
}

// Register attaches all routes under the given group, typically /api/v1.
func Register(r *gin.RouterGroup, s *Services) {
	AnalysisRouter(r, s)
	SearchRouter(r, s)
}

type startAnalysisRequest struct {
	AssetId string `json:"asset_id" binding:"required"`
	Tier    string `json:"tier"`
}

// AnalysisRouter wires the session-control endpoints. Starting a session
// supersedes any session already running; the response carries the new
// session id the caller polls with.
func AnalysisRouter(r *gin.RouterGroup, s *Services) {
	group := r.Group("/analysis")
	{
		group.POST("", func(c *gin.Context) {
			var req startAnalysisRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			tier := model.ParseTier(req.Tier)
			sessionId := s.Orchestrator.StartAnalysis(s.sessionContext(), req.AssetId, tier)
			c.JSON(http.StatusAccepted, gin.H{
				"session_id": sessionId,
				"asset_id":   req.AssetId,
				"tier":       tier,
			})
		})

		group.DELETE("", func(c *gin.Context) {
			s.Orchestrator.Cancel()
			c.Status(http.StatusNoContent)
		})

		// A session that is still running (or was superseded before
		// persisting) has no stored result, so this reads as 404 until
		// completion.
		group.GET("/:id", func(c *gin.Context) {
			id := c.Param("id")
			result, err := s.Results.Get(c.Request.Context(), id)
			if err != nil {
				if s.Orchestrator.IsActive(id) {
					c.JSON(http.StatusAccepted, gin.H{"session_id": id, "state": model.StateRunning})
					return
				}
				c.Status(http.StatusNotFound)
				return
			}
			c.JSON(http.StatusOK, result)
		})

		group.GET("/:id/keyframes/:scene_id", func(c *gin.Context) {
			result, err := s.Results.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				c.Status(http.StatusNotFound)
				return
			}
			sceneId := c.Param("scene_id")
			for _, scene := range result.Scenes {
				if scene.Id != sceneId || scene.KeyFrameURI == "" {
					continue
				}
				url, err := s.Results.GenerateSignedURL(c.Request.Context(), scene.KeyFrameURI, s.SignedUrlTTL)
				if err != nil {
					slog.Error("signed url generation failed", "scene", sceneId, "error", err)
					c.Status(http.StatusInternalServerError)
					return
				}
				c.JSON(http.StatusOK, gin.H{"url": url})
				return
			}
			c.Status(http.StatusNotFound)
		})
	}
}
