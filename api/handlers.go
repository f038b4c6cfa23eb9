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
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tomoncle/itemsvc"
	"github.com/tomoncle/itemsvc/database"
	"github.com/tomoncle/itemsvc/model"
	"github.com/tomoncle/itemsvc/utils"
)

// HealthFunc reports the health of the storage backend.
type HealthFunc func(ctx context.Context) *database.HealthStatus

// Handler serves the item routes.
type Handler struct {
	items  itemsvc.ItemService
	health HealthFunc
	log    *utils.Logger
}

// NewHandler returns a Handler backed by items. health may be nil, in which
// case /health always reports healthy.
func NewHandler(items itemsvc.ItemService, health HealthFunc) *Handler {
	return &Handler{
		items:  items,
		health: health,
		log:    utils.NewLogger("API"),
	}
}

// MessageResponse is returned by operations without an entity to echo.
type MessageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) listItems(c *gin.Context) {
	items, err := h.items.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createItem(c *gin.Context) {
	var in model.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondInvalid(c, err)
		return
	}
	item, err := h.items.Create(c.Request.Context(), &in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) getItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	item, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) updateItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	var in model.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondInvalid(c, err)
		return
	}
	item, err := h.items.Update(c.Request.Context(), id, &in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) deleteItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Item deleted"})
}

func (h *Handler) healthCheck(c *gin.Context) {
	if h.health == nil {
		c.JSON(http.StatusOK, &database.HealthStatus{Healthy: true, Connected: true})
		return
	}
	status := h.health(c.Request.Context())
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

// itemID parses the :id path parameter, writing a 422 when it is not an
// integer.
func (h *Handler) itemID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.respondInvalid(c, &idError{raw: raw})
		return 0, false
	}
	return id, true
}
