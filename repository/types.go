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

package repository

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository runs single parameterized statements for entity type T. Every
// method takes the bun.IDB to execute on, normally the scoped transaction
// handed out by database.AbstractDatabaseManager.WithTx. T must be a Bun
// model with an integer "id" primary key.
type Repository[T any] interface {
	// GetOne returns sql.ErrNoRows when no row has the given id.
	GetOne(ctx context.Context, db bun.IDB, id int64) (*T, error)

	// GetAll returns every row in backend order; never nil.
	GetAll(ctx context.Context, db bun.IDB) ([]*T, error)

	// Create inserts entity and fills in its backend-assigned primary key.
	Create(ctx context.Context, db bun.IDB, entity *T) error

	// Update writes columns (all non-key columns when empty) of the row
	// matching entity's primary key and reports how many rows matched.
	Update(ctx context.Context, db bun.IDB, entity *T, columns ...string) (int64, error)

	// Delete removes the row with the given id and reports how many rows
	// were removed.
	Delete(ctx context.Context, db bun.IDB, id int64) (int64, error)
}
