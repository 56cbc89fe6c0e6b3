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

package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
)

const defaultResultCount = 5

func countParam(c *gin.Context) int {
	count, err := strconv.Atoi(c.DefaultQuery("count", strconv.Itoa(defaultResultCount)))
	if err != nil || count <= 0 {
		count = defaultResultCount
	}
	return count
}

// SearchRouter wires the query endpoints: semantic tag search, category
// listing, and per-asset lookups.
func SearchRouter(r *gin.RouterGroup, s *Services) {
	search := r.Group("/search")
	{
		search.GET("", func(c *gin.Context) {
			query := c.Query("s")
			if len(query) == 0 {
				c.Status(http.StatusBadRequest)
				return
			}
			results, err := s.Search.SearchByQuery(c.Request.Context(), query, countParam(c))
			if err != nil {
				slog.Error("search failed", "query", query, "error", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, results)
		})
	}

	media := r.Group("/media")
	{
		media.GET("/:id", func(c *gin.Context) {
			result, err := s.Results.GetLatestForAsset(c.Request.Context(), c.Param("id"))
			if err != nil {
				c.Status(http.StatusNotFound)
				return
			}
			c.JSON(http.StatusOK, result)
		})

		media.GET("/:id/similar", func(c *gin.Context) {
			assetId := c.Param("id")
			result, err := s.Results.GetLatestForAsset(c.Request.Context(), assetId)
			if err != nil {
				c.Status(http.StatusNotFound)
				return
			}
			similar, err := s.Search.FindSimilar(c.Request.Context(), result, countParam(c))
			if err != nil {
				slog.Error("similarity search failed", "asset", assetId, "error", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, similar)
		})

		media.GET("/category/:category", func(c *gin.Context) {
			category := model.ParseCategory(c.Param("category"))
			if category == model.CategoryUnknown {
				c.Status(http.StatusBadRequest)
				return
			}
			assets, err := s.Results.GetByCategory(c.Request.Context(), category, countParam(c))
			if err != nil {
				slog.Error("category lookup failed", "category", category, "error", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, gin.H{"category": category, "assets": assets})
		})
	}
}
