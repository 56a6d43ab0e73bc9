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
	"encoding/json"

	"github.com/open-gov-forms/license-apply/internal/core"
	"github.com/open-gov-forms/license-apply/internal/database"
	"github.com/open-gov-forms/license-apply/internal/database/models"
	"github.com/pkg/errors"
)

type gormApplicationRepository struct {
	database.Repository[models.Application, core.DB]
	db core.DB
}

func NewApplicationRepository(db core.DB) *gormApplicationRepository {
	err := db.AutoMigrate(&models.Application{})
	if err != nil {
		panic(err)
	}
	return &gormApplicationRepository{
		db:         db,
		Repository: database.NewGormRepository[models.Application](db),
	}
}

// CreateApplication inserts a new application row. Each detail sub-record is
// round-tripped through the json codec before the insert - a blob that cannot
// be serialized must never reach the table, independent of the service layer
// check. A violated uniqueness constraint on application_id surfaces as
// database.ErrDuplicateKey so the caller can regenerate the identifier.
func (g *gormApplicationRepository) CreateApplication(tx core.DB, application *models.Application) error {
	for _, blob := range []any{application.PersonalDetails, application.BusinessDetails, application.LicenseDetails} {
		if _, err := json.Marshal(blob); err != nil {
			return errors.WithMessage(database.ErrCorruptData, err.Error())
		}
	}

	if !application.Status.Valid() {
		return errors.WithMessagef(database.ErrInvalidStatus, "status %q is not allowed", application.Status)
	}

	err := g.Create(tx, application)
	if err != nil && database.IsDuplicateKeyError(err) {
		return errors.WithMessage(database.ErrDuplicateKey, err.Error())
	}
	return err
}

func (g *gormApplicationRepository) ReadByApplicationID(applicationID string) (models.Application, error) {
	var application models.Application
	err := g.db.First(&application, "application_id = ?", applicationID).Error
	if err != nil && database.IsCorruptDataError(err) {
		// a stored blob failed to deserialize - never return partial data
		return models.Application{}, errors.WithMessage(database.ErrCorruptData, err.Error())
	}
	return application, err
}

// ListPaged returns a page of applications ordered by creation time
// descending, optionally filtered to an exact status match.
func (g *gormApplicationRepository) ListPaged(limit, offset int, status *models.ApplicationStatus) ([]models.Application, error) {
	var applications []models.Application
	q := g.db.Model(&models.Application{}).Order("created_at DESC").Limit(limit).Offset(offset)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Find(&applications).Error
	if err != nil && database.IsCorruptDataError(err) {
		return nil, errors.WithMessage(database.ErrCorruptData, err.Error())
	}
	return applications, err
}

// UpdateStatus sets the status of a single application and reports the number
// of changed rows. Zero changes means nothing matched - the caller's signal to
// treat the application as not found.
func (g *gormApplicationRepository) UpdateStatus(tx core.DB, applicationID string, status models.ApplicationStatus) (int64, error) {
	if !status.Valid() {
		return 0, errors.WithMessagef(database.ErrInvalidStatus, "status %q is not allowed", status)
	}

	res := g.GetDB(tx).Model(&models.Application{}).
		Where("application_id = ?", applicationID).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (g *gormApplicationRepository) DeleteByApplicationID(tx core.DB, applicationID string) (int64, error) {
	res := g.GetDB(tx).Where("application_id = ?", applicationID).Delete(&models.Application{})
	return res.RowsAffected, res.Error
}
