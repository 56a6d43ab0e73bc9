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

package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/open-gov-forms/license-apply/internal/core"
)

const CookieName = "lap_session"

func getCookie(name string, cookies []*http.Cookie) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// SessionMiddleware resolves the session cookie to its server side state,
// creating a fresh session (and cookie) when there is none. Handlers further
// down always find a session on the context.
func SessionMiddleware(store *Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var session *Session

			cookie := getCookie(CookieName, c.Cookies())
			if cookie != nil {
				if existing, ok := store.Get(cookie.Value); ok {
					session = existing
				}
			}

			if session == nil {
				session = store.New()
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    session.ID(),
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			core.SetSession(c, session)

			return next(c)
		}
	}
}
