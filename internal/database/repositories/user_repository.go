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

package repositories

import (
	"github.com/open-gov-forms/license-apply/internal/core"
	"github.com/open-gov-forms/license-apply/internal/database"
	"github.com/open-gov-forms/license-apply/internal/database/models"
)

type gormUserRepository struct {
	database.Repository[models.User, core.DB]
	db core.DB
}

func NewUserRepository(db core.DB) *gormUserRepository {
	err := db.AutoMigrate(&models.User{})
	if err != nil {
		panic(err)
	}
	return &gormUserRepository{
		db:         db,
		Repository: database.NewGormRepository[models.User](db),
	}
}

func (g *gormUserRepository) ReadByEmailAndRole(email, role string) (models.User, error) {
	var user models.User
	err := g.db.First(&user, "email = ? AND role = ?", email, role).Error
	return user, err
}

// FirstOrCreate looks a principal up by email and role and inserts it when
// missing. Used by the startup seeding only.
func (g *gormUserRepository) FirstOrCreate(tx core.DB, user *models.User) error {
	return g.GetDB(tx).
		Where("email = ? AND role = ?", user.Email, user.Role).
		FirstOrCreate(user).Error
}
