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

// Package apperror carries the error taxonomy every boundary of the service
// speaks: bad input, missing entity, denied access and everything else.
// Callers must always be able to tell those apart, so lower layer faults get
// wrapped into one of these categories exactly once, at the service layer.
package apperror

import (
	"errors"
	"net/http"
)

// FieldError is a single field scoped validation failure. Value carries the
// offending input so a form can be re-rendered without losing user data.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"msg"`
	Value   string `json:"value"`
}

type Error struct {
	code    string
	status  int
	message string
	details []FieldError
	cause   error
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Status() int {
	return e.status
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Details() []FieldError {
	return e.details
}

func NewValidationError(message string, details ...FieldError) *Error {
	return &Error{
		code:    "VALIDATION_ERROR",
		status:  http.StatusBadRequest,
		message: message,
		details: details,
	}
}

func NewNotFoundError(resource string) *Error {
	return &Error{
		code:    "NOT_FOUND",
		status:  http.StatusNotFound,
		message: resource + " not found",
	}
}

func NewUnauthorizedError(message string) *Error {
	return &Error{
		code:    "UNAUTHORIZED",
		status:  http.StatusUnauthorized,
		message: message,
	}
}

func NewForbiddenError(message string) *Error {
	return &Error{
		code:    "FORBIDDEN",
		status:  http.StatusForbidden,
		message: message,
	}
}

func NewInternalError(message string, cause error) *Error {
	return &Error{
		code:    "INTERNAL_ERROR",
		status:  http.StatusInternalServerError,
		message: message,
		cause:   cause,
	}
}

func IsValidation(err error) bool {
	return codeOf(err) == "VALIDATION_ERROR"
}

func IsNotFound(err error) bool {
	return codeOf(err) == "NOT_FOUND"
}

func IsUnauthorized(err error) bool {
	return codeOf(err) == "UNAUTHORIZED"
}

// Classified reports whether err already belongs to the taxonomy. The service
// layer uses this to avoid obscuring a validation or not-found classification
// by re-wrapping it.
func Classified(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// StatusOf maps an error to the HTTP status it should surface as.
// Unclassified errors are treated as internal faults.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.status
	}
	return http.StatusInternalServerError
}

// CodeOf returns the machine readable error code for the response envelope.
func CodeOf(err error) string {
	if code := codeOf(err); code != "" {
		return code
	}
	return "INTERNAL_ERROR"
}

// DetailsOf returns the field scoped details, if any.
func DetailsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.details
	}
	return nil
}

func codeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}
