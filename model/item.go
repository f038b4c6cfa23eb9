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

// Package model holds the persisted entities of the items service.
package model

import (
	"github.com/tomoncle/itemsvc/database"
	"github.com/uptrace/bun"
)

// Item is a row of the items table. ID is assigned by the backend and is
// never taken from client input.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID          int64   `bun:"id,pk,autoincrement" json:"id"`
	Name        string  `bun:"name,type:text" json:"name"`
	Description *string `bun:"description,type:text" json:"description"`
}

// ItemInput is the request body accepted by create and update.
type ItemInput struct {
	Name        string  `json:"name" binding:"required,notblank"`
	Description *string `json:"description"`
}

// ToItem converts the input into an Item carrying the given id.
func (in *ItemInput) ToItem(id int64) *Item {
	return &Item{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
	}
}

func init() {
	database.RegisteredModel(database.NewModelAdapter((*Item)(nil), 10))
}
