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
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/open-gov-forms/license-apply/internal/apperror"
	"github.com/open-gov-forms/license-apply/internal/core"
)

type HTTPController struct {
	applicationService *Service
}

func NewHTTPController(applicationService *Service) *HTTPController {
	return &HTTPController{
		applicationService: applicationService,
	}
}

func (a *HTTPController) List(c core.Context) error {
	limit := 50
	offset := 0

	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return core.JSONError(c, apperror.NewValidationError("limit must be an integer"))
		}
		limit = parsed
	}
	if v := c.QueryParam("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return core.JSONError(c, apperror.NewValidationError("offset must be an integer"))
		}
		offset = parsed
	}

	page, err := a.applicationService.GetApplications(ListOptions{
		Limit:  limit,
		Offset: offset,
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return core.JSONError(c, err)
	}

	return core.JSONPage(c, http.StatusOK, page.Applications, page.Pagination)
}

func (a *HTTPController) Read(c core.Context) error {
	application, err := a.applicationService.GetApplication(core.GetParam(c, "id"))
	if err != nil {
		return core.JSONError(c, err)
	}
	return core.JSONData(c, http.StatusOK, application)
}

func (a *HTTPController) Create(c core.Context) error {
	var payload Payload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}

	result, err := a.applicationService.CreateApplication(payload)
	if err != nil {
		return core.JSONError(c, err)
	}

	return core.JSONData(c, http.StatusCreated, result)
}

func (a *HTTPController) UpdateStatus(c core.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}
	if err := core.V.Struct(req); err != nil {
		return core.JSONError(c, apperror.NewValidationError("status is required"))
	}

	if err := a.applicationService.UpdateApplicationStatus(core.GetParam(c, "id"), req.Status); err != nil {
		return core.JSONError(c, err)
	}

	return core.JSONMessage(c, http.StatusOK, "Application status updated successfully")
}

func (a *HTTPController) Delete(c core.Context) error {
	if err := a.applicationService.DeleteApplication(core.GetParam(c, "id")); err != nil {
		return core.JSONError(c, err)
	}
	return core.JSONMessage(c, http.StatusOK, "Application deleted successfully")
}
