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
	"log/slog"

	"github.com/open-gov-forms/license-apply/internal/apperror"
)

// Response is the uniform JSON envelope of the API surface.
type Response struct {
	Success    bool                  `json:"success"`
	Data       any                   `json:"data,omitempty"`
	Message    string                `json:"message,omitempty"`
	Error      string                `json:"error,omitempty"`
	Details    []apperror.FieldError `json:"details,omitempty"`
	Pagination any                   `json:"pagination,omitempty"`
}

func JSONData(c Context, status int, data any) error {
	return c.JSON(status, Response{Success: true, Data: data})
}

func JSONPage(c Context, status int, data any, pagination any) error {
	return c.JSON(status, Response{Success: true, Data: data, Pagination: pagination})
}

func JSONMessage(c Context, status int, message string) error {
	return c.JSON(status, Response{Success: true, Message: message})
}

// JSONError maps a classified error to its status and envelope. Unclassified
// errors surface as a 500 without leaking the cause.
func JSONError(c Context, err error) error {
	status := apperror.StatusOf(err)
	message := err.Error()
	if status >= 500 {
		slog.Error("request failed", "err", err)
		message = "An unexpected error occurred"
	}
	return c.JSON(status, Response{
		Success: false,
		Error:   apperror.CodeOf(err),
		Message: message,
		Details: apperror.DetailsOf(err),
	})
}
