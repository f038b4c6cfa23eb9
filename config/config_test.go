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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "itemsd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Should return defaults without a file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 8000, cfg.Server.Port)
		assert.Equal(t, "mysql", cfg.Database.Type)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 3306, cfg.Database.Port)
		assert.Equal(t, "fastapi_db", cfg.Database.DBName)
		assert.Equal(t, 5*time.Second, cfg.Database.AcquireTimeout)
	})

	t.Run("Should overlay the file on the defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  bind: 127.0.0.1
  port: 9000
database:
  host: db.internal
  port: 3307
  user: app
  password: secret
  db: inventory
  max_open_conns: 5
  acquire_timeout: 2s
log:
  level: debug
  format: json
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
		assert.Equal(t, "mysql", cfg.Database.Type)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 3307, cfg.Database.Port)
		assert.Equal(t, "app", cfg.Database.Username)
		assert.Equal(t, "secret", cfg.Database.Password)
		assert.Equal(t, "inventory", cfg.Database.DBName)
		assert.Equal(t, 5, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, 2*time.Second, cfg.Database.AcquireTimeout)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)

		dbCfg := cfg.ConfigLoader()
		assert.Equal(t, cfg.Database, dbCfg.ConnectionConfig)
	})

	t.Run("Should apply PORT from the environment", func(t *testing.T) {
		t.Setenv("PORT", "8123")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 8123, cfg.Server.Port)
	})

	t.Run("Should fail on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("Should fail on malformed YAML", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [unclosed"))
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("Should reject an out of range port", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server:\n  port: 70000\n"))
		assert.ErrorContains(t, err, "invalid server port")
	})

	t.Run("Should reject an invalid bind address", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server:\n  bind: not-an-ip\n"))
		assert.ErrorContains(t, err, "invalid bind address")
	})
}
