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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "itemsd.yaml")
	data := []byte("server:\n  bind: 127.0.0.1\n  port: 9000\ndatabase:\n  type: sqlite\n  db: items\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestResolveConfig(t *testing.T) {
	t.Run("Should read the file named by the path", func(t *testing.T) {
		t.Setenv("PORT", "")
		cfg, err := resolveConfig(writeConfig(t), 0, "")
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "127.0.0.1", cfg.Server.Bind)
		assert.Equal(t, "sqlite", cfg.Database.Type)
	})

	t.Run("Should fall back to ITEMSD_CONFIG", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("ITEMSD_CONFIG", writeConfig(t))
		cfg, err := resolveConfig("", 0, "")
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Server.Port)
	})

	t.Run("Should let PORT override the file", func(t *testing.T) {
		t.Setenv("PORT", "9100")
		cfg, err := resolveConfig(writeConfig(t), 0, "")
		require.NoError(t, err)
		assert.Equal(t, 9100, cfg.Server.Port)
	})

	t.Run("Should let flags override PORT and the file", func(t *testing.T) {
		t.Setenv("PORT", "9100")
		cfg, err := resolveConfig(writeConfig(t), 9200, "10.0.0.5")
		require.NoError(t, err)
		assert.Equal(t, 9200, cfg.Server.Port)
		assert.Equal(t, "10.0.0.5", cfg.Server.Bind)
		assert.Equal(t, "10.0.0.5:9200", cfg.Server.Addr())
	})

	t.Run("Should reject invalid flag values", func(t *testing.T) {
		t.Setenv("PORT", "")
		_, err := resolveConfig(writeConfig(t), 70000, "")
		assert.ErrorContains(t, err, "invalid server port")

		_, err = resolveConfig(writeConfig(t), 0, "not-an-ip")
		assert.ErrorContains(t, err, "invalid bind address")
	})

	t.Run("Should report a missing file", func(t *testing.T) {
		_, err := resolveConfig(filepath.Join(t.TempDir(), "absent.yaml"), 0, "")
		assert.Error(t, err)
	})
}
