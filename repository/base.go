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
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
)

type baseRepositoryImpl[T any] struct{}

// NewRepository returns a generic Bun-backed repository for T.
func NewRepository[T any]() Repository[T] {
	return &baseRepositoryImpl[T]{}
}

func (r *baseRepositoryImpl[T]) GetOne(ctx context.Context, db bun.IDB, id int64) (*T, error) {
	entity := new(T)
	err := db.NewSelect().Model(entity).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *baseRepositoryImpl[T]) GetAll(ctx context.Context, db bun.IDB) ([]*T, error) {
	entities := make([]*T, 0)
	if err := db.NewSelect().Model(&entities).Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

// Create uses RETURNING where the dialect supports it; otherwise Bun reads
// the driver's last insert id into the primary key field.
func (r *baseRepositoryImpl[T]) Create(ctx context.Context, db bun.IDB, entity *T) error {
	query := db.NewInsert().Model(entity)
	if db.Dialect().Features().Has(feature.InsertReturning) {
		query = query.Returning("id")
	}
	_, err := query.Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, db bun.IDB, entity *T, columns ...string) (int64, error) {
	query := db.NewUpdate().Model(entity).WherePK()
	if len(columns) > 0 {
		query = query.Column(columns...)
	}
	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}

func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, db bun.IDB, id int64) (int64, error) {
	res, err := db.NewDelete().Model((*T)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
