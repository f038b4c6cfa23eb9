/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tomoncle/itemsvc/types"
	"github.com/tomoncle/itemsvc/utils"
)

// NewRouter builds the gin engine serving the item routes and /health.
func NewRouter(h *Handler) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	accessLog := utils.NewLogger("HTTP")
	r := gin.New()
	r.Use(RecoveryMiddleware(accessLog), LoggerMiddleware(accessLog))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Not Found", Code: types.KindNotFound.Name()})
	})

	Register(r, h)
	return r, nil
}

// Register mounts the handler's routes on r.
func Register(r gin.IRouter, h *Handler) {
	items := r.Group("/items")
	{
		// GET /items/
		items.GET("/", h.listItems)

		// POST /items/
		items.POST("/", h.createItem)

		// GET /items/:id
		items.GET("/:id", h.getItem)

		// PUT /items/:id
		items.PUT("/:id", h.updateItem)

		// DELETE /items/:id
		items.DELETE("/:id", h.deleteItem)
	}

	r.GET("/health", h.healthCheck)
}
