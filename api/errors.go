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
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/tomoncle/itemsvc/database"
	"github.com/tomoncle/itemsvc/types"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind types.ErrorKind) int {
	switch kind {
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindInvalidInput:
		return http.StatusUnprocessableEntity
	case types.KindResourceUnavailable, types.KindBackendUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err with its cause and writes the client-safe body for
// its kind. The cause never reaches the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	kind := types.KindOf(err)
	if kind == types.KindUnknown {
		kind = types.KindInternal
	}
	status := StatusOf(kind)

	fields := logrus.Fields{
		"req_method": c.Request.Method,
		"req_uri":    c.Request.RequestURI,
		"kind":       kind.Name(),
		"error":      err,
	}
	if status >= http.StatusInternalServerError {
		if is, class := database.IsSqlError(err); is {
			fields["sql_error"] = class.String()
		}
		h.log.WithFields(fields).Error("Request failed")
	} else {
		h.log.WithFields(fields).Debug("Request rejected")
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Detail: kind.Desc(), Code: kind.Name()})
}

// respondInvalid writes a 422 describing what was wrong with the request.
// Only request-derived text is included.
func (h *Handler) respondInvalid(c *gin.Context, err error) {
	h.log.WithFields(logrus.Fields{
		"req_method": c.Request.Method,
		"req_uri":    c.Request.RequestURI,
		"error":      err,
	}).Debug("Invalid request")

	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
		Detail: invalidDetail(err),
		Code:   types.KindInvalidInput.Name(),
	})
}

func invalidDetail(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s: failed on the '%s' rule", fe.Field(), fe.Tag()))
		}
		return strings.Join(parts, "; ")
	}
	var idErr *idError
	if errors.As(err, &idErr) {
		return idErr.Error()
	}
	return "request body is not valid JSON for an item"
}

type idError struct {
	raw string
}

func (e *idError) Error() string {
	return fmt.Sprintf("item_id: %q is not a valid integer", e.raw)
}
