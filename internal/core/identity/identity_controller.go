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

package identity

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/open-gov-forms/license-apply/internal/apperror"
	"github.com/open-gov-forms/license-apply/internal/core"
)

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// loginView is the render payload for both login pages.
type loginView struct {
	Role      core.Role `json:"role"`
	Error     string    `json:"error,omitempty"`
	CSRFToken string    `json:"csrfToken"`
}

type HTTPController struct {
	service *Service
}

func NewHTTPController(service *Service) *HTTPController {
	return &HTTPController{service: service}
}

func (c *HTTPController) LoginPage(ctx core.Context) error {
	return c.loginPage(ctx, core.RoleUser)
}

func (c *HTTPController) AdminLoginPage(ctx core.Context) error {
	return c.loginPage(ctx, core.RoleAdmin)
}

func (c *HTTPController) loginPage(ctx core.Context, role core.Role) error {
	session := core.GetSession(ctx)
	return ctx.JSON(http.StatusOK, loginView{
		Role:      role,
		CSRFToken: session.CSRFToken(),
	})
}

func (c *HTTPController) Login(ctx core.Context) error {
	return c.login(ctx, core.RoleUser, "/personal-details")
}

func (c *HTTPController) AdminLogin(ctx core.Context) error {
	return c.login(ctx, core.RoleAdmin, "/admin/applications")
}

func (c *HTTPController) login(ctx core.Context, role core.Role, target string) error {
	var form loginForm
	if err := ctx.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}

	session := core.GetSession(ctx)
	principal, err := c.service.Login(strings.ToLower(strings.TrimSpace(form.Email)), form.Password, role)
	if err != nil {
		if !apperror.IsUnauthorized(err) {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not process login").WithInternal(err)
		}
		return ctx.JSON(http.StatusUnauthorized, loginView{
			Role:      role,
			Error:     "Invalid email or password",
			CSRFToken: session.CSRFToken(),
		})
	}

	session.SetPrincipal(principal)
	return ctx.Redirect(http.StatusSeeOther, target)
}

// Logout drops the applicant principal but keeps the session, so a
// confirmation page opened in another tab stays readable.
func (c *HTTPController) Logout(ctx core.Context) error {
	core.GetSession(ctx).ClearPrincipal(core.RoleUser)
	return ctx.Redirect(http.StatusSeeOther, "/login")
}

// AdminLogout tears the whole session down.
func (c *HTTPController) AdminLogout(ctx core.Context) error {
	core.GetSession(ctx).Destroy()
	return ctx.Redirect(http.StatusSeeOther, "/admin/login")
}
