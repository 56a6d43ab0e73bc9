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

package application

import (
	"time"

	"github.com/open-gov-forms/license-apply/internal/database"
	"github.com/open-gov-forms/license-apply/internal/database/models"
)

// Payload is a complete application as submitted for creation, either by the
// wizard's final step or directly through the API. The detail sub-records are
// pointers so a missing block is distinguishable from an empty one.
type Payload struct {
	PersonalDetails *models.PersonalDetails `json:"personalDetails"`
	BusinessDetails *models.BusinessDetails `json:"businessDetails"`
	LicenseDetails  *models.LicenseDetails  `json:"licenseDetails"`
	Declaration     string                  `json:"declaration"`
}

// CreateResult is what a successful submission hands back to the applicant.
type CreateResult struct {
	ApplicationID string                   `json:"applicationId"`
	Status        models.ApplicationStatus `json:"status"`
	SubmittedAt   time.Time                `json:"submittedAt"`
}

type ListOptions struct {
	Limit  int
	Offset int
	Status string
}

type Page struct {
	Applications []models.Application
	Pagination   database.PageInfo
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
