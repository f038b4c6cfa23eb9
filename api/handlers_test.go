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

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/itemsvc"
	"github.com/tomoncle/itemsvc/api"
	"github.com/tomoncle/itemsvc/database"
	"github.com/tomoncle/itemsvc/model"
	"github.com/tomoncle/itemsvc/types"
)

func setupRouter(t *testing.T) (*gin.Engine, database.AbstractDatabaseManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := database.DefaultConnectionConfig()
	cfg.Type = "sqlite"
	cfg.DBName = filepath.Join(t.TempDir(), "items")
	cfg.MaxOpenConns = 1
	cfg.HealthCheckInterval = 0
	manager := database.NewDatabaseManager(cfg)
	require.NoError(t, manager.Connect(context.Background()))
	t.Cleanup(func() { _ = manager.Disconnect() })
	require.NoError(t, manager.EnsureSchema(context.Background()))

	r, err := api.NewRouter(api.NewHandler(itemsvc.NewItemService(manager), manager.HealthCheck))
	require.NoError(t, err)
	return r, manager
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestItemRoutes(t *testing.T) {
	t.Run("Should create, read, update, list and delete an item", func(t *testing.T) {
		r, _ := setupRouter(t)

		w := do(r, http.MethodPost, "/items/", `{"name":"pen","description":"blue ink"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		created := decode[model.Item](t, w)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "pen", created.Name)
		require.NotNil(t, created.Description)
		assert.Equal(t, "blue ink", *created.Description)

		path := "/items/" + jsonNumber(created.ID)
		w = do(r, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":`+jsonNumber(created.ID)+`,"name":"pen","description":"blue ink"}`, w.Body.String())

		w = do(r, http.MethodPut, path, `{"name":"pen","description":null}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":`+jsonNumber(created.ID)+`,"name":"pen","description":null}`, w.Body.String())

		w = do(r, http.MethodGet, "/items/", "")
		require.Equal(t, http.StatusOK, w.Code)
		items := decode[[]model.Item](t, w)
		require.Len(t, items, 1)
		assert.Nil(t, items[0].Description)

		w = do(r, http.MethodDelete, path, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Item deleted"}`, w.Body.String())

		w = do(r, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should list an empty table as an empty array", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := do(r, http.MethodGet, "/items/", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Should ignore a client supplied id on create", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := do(r, http.MethodPost, "/items/", `{"id":777,"name":"cup"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEqual(t, int64(777), decode[model.Item](t, w).ID)
	})
}

func TestItemRoutes_Errors(t *testing.T) {
	t.Run("Should return 404 for a missing item", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := do(r, http.MethodGet, "/items/999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decode[api.ErrorResponse](t, w)
		assert.Equal(t, "Item not found", body.Detail)
		assert.Equal(t, "NotFound", body.Code)
	})

	t.Run("Should return 404 when updating a missing item", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := do(r, http.MethodPut, "/items/999", `{"name":"ghost"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Should return 422 for a non-integer id", func(t *testing.T) {
		r, _ := setupRouter(t)
		for _, method := range []string{http.MethodGet, http.MethodDelete} {
			w := do(r, method, "/items/abc", "")
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, method)
			assert.Equal(t, "InvalidInput", decode[api.ErrorResponse](t, w).Code)
		}
		w := do(r, http.MethodPut, "/items/abc", `{"name":"pen"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Should return 422 for invalid bodies", func(t *testing.T) {
		r, _ := setupRouter(t)
		bodies := []string{
			`{"description":"no name"}`,
			`{"name":""}`,
			`{"name":"   "}`,
			`{"name":42}`,
			`not json`,
		}
		for _, body := range bodies {
			w := do(r, http.MethodPost, "/items/", body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
		}

		w := do(r, http.MethodGet, "/items/", "")
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Should name the failing field", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := do(r, http.MethodPost, "/items/", `{"name":"  "}`)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, decode[api.ErrorResponse](t, w).Detail, "name")
	})

	t.Run("Should hide backend errors behind a generic 500", func(t *testing.T) {
		r, manager := setupRouter(t)
		_, err := manager.GetDB().ExecContext(context.Background(), "DROP TABLE items")
		require.NoError(t, err)

		w := do(r, http.MethodGet, "/items/", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode[api.ErrorResponse](t, w)
		assert.Equal(t, "Internal Server Error", body.Detail)
		assert.NotContains(t, w.Body.String(), "items")
	})
}

func TestHealthRoute(t *testing.T) {
	t.Run("Should report a healthy database", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := do(r, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[database.HealthStatus](t, w).Healthy)
	})

	t.Run("Should return 503 when the database is down", func(t *testing.T) {
		r, manager := setupRouter(t)
		require.NoError(t, manager.Disconnect())
		w := do(r, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestStatusOf(t *testing.T) {
	cases := map[types.ErrorKind]int{
		types.KindNotFound:            http.StatusNotFound,
		types.KindInvalidInput:        http.StatusUnprocessableEntity,
		types.KindInternal:            http.StatusInternalServerError,
		types.KindResourceUnavailable: http.StatusServiceUnavailable,
		types.KindBackendUnavailable:  http.StatusServiceUnavailable,
		types.KindUnknown:             http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, api.StatusOf(kind), kind.Name())
	}
}

type failingService struct {
	itemsvc.ItemService
	err error
}

func (f failingService) List(context.Context) ([]*model.Item, error) { return nil, f.err }

func TestUnavailableBackend(t *testing.T) {
	t.Run("Should map unavailable kinds to 503", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		for _, kind := range []types.ErrorKind{types.KindResourceUnavailable, types.KindBackendUnavailable} {
			svc := failingService{err: types.NewError(kind, itemsvc.OpListItems, errors.New("pool"))}
			r, err := api.NewRouter(api.NewHandler(svc, nil))
			require.NoError(t, err)

			w := do(r, http.MethodGet, "/items/", "")
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Equal(t, kind.Name(), decode[api.ErrorResponse](t, w).Code)
			assert.NotContains(t, w.Body.String(), "pool")
		}
	})
}

func jsonNumber(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
