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

package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	globalMu      sync.Mutex
	globalFactory *BaseDatabaseFactory
)

// ErrAlreadyInitialized is returned by InitDB when the process-wide pool is
// already open.
var ErrAlreadyInitialized = errors.New("database already initialized")

// InitDB opens the process-wide pool from cfg. It must be paired with CloseDB
// at shutdown.
func InitDB(ctx context.Context, cfg *Config) (AbstractDatabaseManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalFactory != nil {
		return nil, ErrAlreadyInitialized
	}

	factory := NewDatabaseFactory()
	manager, err := factory.CreateFromConfig(&cfg.ConnectionConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := factory.InitializeDatabase(ctx); err != nil {
		_ = factory.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	globalFactory = factory
	return manager, nil
}

// CloseDB closes the process-wide pool. It is safe to call when InitDB was
// never called or failed.
func CloseDB() error {
	globalMu.Lock()
	factory := globalFactory
	globalFactory = nil
	globalMu.Unlock()

	if factory == nil {
		return nil
	}
	return factory.Close()
}

// GetDatabaseManager returns the process-wide manager, or nil before InitDB.
func GetDatabaseManager() AbstractDatabaseManager {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalFactory == nil {
		return nil
	}
	return globalFactory.GetManager()
}

// GetHealthStatus returns the health of the process-wide pool.
func GetHealthStatus(ctx context.Context) *HealthStatus {
	globalMu.Lock()
	factory := globalFactory
	globalMu.Unlock()
	if factory == nil {
		return &HealthStatus{LastError: "Database not initialized"}
	}
	return factory.GetHealthStatus(ctx)
}
