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

package review

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/open-gov-forms/license-apply/internal/core"
	"github.com/open-gov-forms/license-apply/internal/core/application"
	"github.com/open-gov-forms/license-apply/internal/database/models"
)

// adminListLimit caps the review panel at one page. Pagination controls
// belong to the JSON API, the panel shows the newest submissions.
const adminListLimit = 100

// PanelView is the render payload for the review panel.
type PanelView struct {
	Applications []models.Application `json:"applications"`
	Success      string               `json:"success,omitempty"`
	Error        string               `json:"error,omitempty"`
	CSRFToken    string               `json:"csrfToken"`
}

type reviewDecisionForm struct {
	Status string `form:"status"`
}

type HTTPController struct {
	applicationService *application.Service
}

func NewHTTPController(applicationService *application.Service) *HTTPController {
	return &HTTPController{applicationService: applicationService}
}

func (c *HTTPController) Panel(ctx core.Context) error {
	page, err := c.applicationService.GetApplications(application.ListOptions{
		Limit:  adminListLimit,
		Offset: 0,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load applications").WithInternal(err)
	}

	session := core.GetSession(ctx)
	return ctx.JSON(http.StatusOK, PanelView{
		Applications: page.Applications,
		Success:      ctx.QueryParam("success"),
		Error:        ctx.QueryParam("error"),
		CSRFToken:    session.CSRFToken(),
	})
}

// Decide approves or rejects a single application. The panel only ever
// issues these two statuses, everything else is a bad request.
func (c *HTTPController) Decide(ctx core.Context) error {
	var form reviewDecisionForm
	if err := ctx.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}

	status := models.ApplicationStatus(form.Status)
	if status != models.StatusApproved && status != models.StatusRejected {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be approved or rejected")
	}

	applicationID := core.GetParam(ctx, "id")
	if err := c.applicationService.UpdateApplicationStatus(applicationID, string(status)); err != nil {
		return ctx.Redirect(http.StatusSeeOther,
			"/admin/applications?error="+url.QueryEscape("Failed to update application status"))
	}

	message := "Application approved successfully"
	if status == models.StatusRejected {
		message = "Application rejected successfully"
	}
	return ctx.Redirect(http.StatusSeeOther, "/admin/applications?success="+url.QueryEscape(message))
}
