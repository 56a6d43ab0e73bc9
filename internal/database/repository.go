// Copyright (C) 2024 Open Government Forms
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package database

import (
	"gorm.io/gorm"
)

type Tabler interface {
	TableName() string
}

// Repository is the storage spine shared by the concrete repositories. It
// stays deliberately narrow: lookups run against domain keys, not the
// surrogate primary key, so the concrete repositories own their reads.
type Repository[T Tabler, Tx any] interface {
	Create(tx Tx, t *T) error
	Transaction(func(tx Tx) error) error
	GetDB(tx Tx) Tx
}

type GormRepository[T Tabler] struct {
	db *gorm.DB
}

func NewGormRepository[T Tabler](db *gorm.DB) Repository[T, *gorm.DB] {
	return &GormRepository[T]{
		db: db,
	}
}

func (g *GormRepository[T]) Transaction(f func(tx *gorm.DB) error) error {
	tx := g.db.Begin()
	err := f(tx)
	if err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func (g *GormRepository[T]) GetDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}

	return g.db
}

func (g *GormRepository[T]) Create(tx *gorm.DB, t *T) error {
	return g.GetDB(tx).Create(t).Error
}
