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

package core

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/open-gov-forms/license-apply/internal/accesscontrol"
	"github.com/open-gov-forms/license-apply/internal/apperror"
)

// AccessControlMiddleware gates a route on a role's capability. A session
// without a principal for the role is redirected to that role's login page
// instead of erroring; an authenticated principal lacking the permission gets
// a 403.
func AccessControlMiddleware(rbac accesscontrol.AccessControl, role Role, obj accesscontrol.Object, act accesscontrol.Action, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := GetSession(c)

			principal, ok := session.Principal(role)
			if !ok {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			allowed, err := rbac.IsAllowed(principal.UserID.String(), obj, act)
			if err != nil {
				return apperror.NewInternalError("could not determine if the user has access", err)
			}

			if !allowed {
				return apperror.NewForbiddenError("you are not allowed to access this resource")
			}

			SetPrincipal(c, principal)

			return next(c)
		}
	}
}
