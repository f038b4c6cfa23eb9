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

package itemsvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tomoncle/itemsvc/database"
	"github.com/tomoncle/itemsvc/model"
	"github.com/tomoncle/itemsvc/repository"
	"github.com/tomoncle/itemsvc/types"
	"github.com/uptrace/bun"
)

const (
	OpListItems  = "items.list"
	OpCreateItem = "items.create"
	OpGetItem    = "items.get"
	OpUpdateItem = "items.update"
	OpDeleteItem = "items.delete"
)

// ItemService exposes the item operations. Each call runs in its own scoped
// transaction and returns a *types.Error on failure.
type ItemService interface {
	// List returns every stored item.
	List(ctx context.Context) ([]*model.Item, error)

	// Create stores a new item and returns it with its assigned id.
	Create(ctx context.Context, in *model.ItemInput) (*model.Item, error)

	// Get returns the item with the given id, or a NotFound error.
	Get(ctx context.Context, id int64) (*model.Item, error)

	// Update replaces name and description of an existing item. A missing
	// id is a NotFound error.
	Update(ctx context.Context, id int64, in *model.ItemInput) (*model.Item, error)

	// Delete removes the item if it exists. Deleting a missing id succeeds.
	Delete(ctx context.Context, id int64) error
}

type itemServiceImpl struct {
	manager database.AbstractDatabaseManager
	repo    repository.Repository[model.Item]
}

// NewItemService returns an ItemService running on manager's pool.
func NewItemService(manager database.AbstractDatabaseManager) ItemService {
	return &itemServiceImpl{
		manager: manager,
		repo:    repository.NewRepository[model.Item](),
	}
}

func (s *itemServiceImpl) List(ctx context.Context) ([]*model.Item, error) {
	var items []*model.Item
	err := s.manager.WithTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		items, err = s.repo.GetAll(ctx, tx)
		return err
	})
	if err != nil {
		return nil, wrap(OpListItems, err)
	}
	return items, nil
}

func (s *itemServiceImpl) Create(ctx context.Context, in *model.ItemInput) (*model.Item, error) {
	if in == nil {
		return nil, types.NewError(types.KindInvalidInput, OpCreateItem, errors.New("item is required"))
	}
	item := in.ToItem(0)
	err := s.manager.WithTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return s.repo.Create(ctx, tx, item)
	})
	if err != nil {
		return nil, wrap(OpCreateItem, err)
	}
	return item, nil
}

func (s *itemServiceImpl) Get(ctx context.Context, id int64) (*model.Item, error) {
	var item *model.Item
	err := s.manager.WithTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		item, err = s.repo.GetOne(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, wrap(OpGetItem, err)
	}
	return item, nil
}

func (s *itemServiceImpl) Update(ctx context.Context, id int64, in *model.ItemInput) (*model.Item, error) {
	if in == nil {
		return nil, types.NewError(types.KindInvalidInput, OpUpdateItem, errors.New("item is required"))
	}
	item := in.ToItem(id)
	err := s.manager.WithTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		n, err := s.repo.Update(ctx, tx, item, "name", "description")
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return nil, wrap(OpUpdateItem, err)
	}
	return item, nil
}

func (s *itemServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.manager.WithTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := s.repo.Delete(ctx, tx, id)
		return err
	})
	if err != nil {
		return wrap(OpDeleteItem, err)
	}
	return nil
}

// wrap tags err with op. Errors already carrying a kind keep it; a missing
// row becomes NotFound and anything else is an internal failure.
func wrap(op string, err error) error {
	if kind := types.KindOf(err); kind != types.KindUnknown {
		return types.NewError(kind, op, err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return types.NewError(types.KindNotFound, op, err)
	}
	return types.NewError(types.KindInternal, op, err)
}
