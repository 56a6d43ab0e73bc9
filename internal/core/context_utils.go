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
	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal is an authenticated identity associated with a session. A single
// session may carry a user principal and an admin principal at the same time,
// each established through its own login flow.
type Principal struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}

// FormState is the typed field union of all wizard steps. It accumulates in
// the session as the applicant moves through the steps and is only ever
// mutated with already validated and normalized values.
type FormState struct {
	// personal details
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	DobDay          string `json:"dobDay"`
	DobMonth        string `json:"dobMonth"`
	DobYear         string `json:"dobYear"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	AddressLine1    string `json:"addressLine1"`
	AddressLine2    string `json:"addressLine2"`
	AddressTown     string `json:"addressTown"`
	AddressCounty   string `json:"addressCounty"`
	AddressPostcode string `json:"addressPostcode"`

	// business details
	BusinessName            string `json:"businessName"`
	CompanyNumber           string `json:"companyNumber"`
	BusinessType            string `json:"businessType"`
	BusinessAddressLine1    string `json:"businessAddressLine1"`
	BusinessAddressLine2    string `json:"businessAddressLine2"`
	BusinessAddressTown     string `json:"businessAddressTown"`
	BusinessAddressCounty   string `json:"businessAddressCounty"`
	BusinessAddressPostcode string `json:"businessAddressPostcode"`
	BusinessPhone           string `json:"businessPhone"`
	BusinessEmail           string `json:"businessEmail"`

	// license details
	LicenseType             string   `json:"licenseType"`
	PremisesType            string   `json:"premisesType"`
	PremisesAddressLine1    string   `json:"premisesAddressLine1"`
	PremisesAddressLine2    string   `json:"premisesAddressLine2"`
	PremisesAddressTown     string   `json:"premisesAddressTown"`
	PremisesAddressCounty   string   `json:"premisesAddressCounty"`
	PremisesAddressPostcode string   `json:"premisesAddressPostcode"`
	Activities              []string `json:"activities"`
	MondayHours             string   `json:"mondayHours"`
	TuesdayHours            string   `json:"tuesdayHours"`
	WednesdayHours          string   `json:"wednesdayHours"`
	ThursdayHours           string   `json:"thursdayHours"`
	FridayHours             string   `json:"fridayHours"`
	SaturdayHours           string   `json:"saturdayHours"`
	SundayHours             string   `json:"sundayHours"`
}

// AuthSession is the server side state behind the session cookie.
type AuthSession interface {
	ID() string
	Principal(role Role) (Principal, bool)
	SetPrincipal(p Principal)
	ClearPrincipal(role Role)
	CSRFToken() string
	FormState() *FormState
	ApplicationID() string
	SetApplicationID(id string)
	Destroy()
}

func GetSession(ctx Context) AuthSession {
	return ctx.Get("session").(AuthSession)
}

func SetSession(ctx Context, session AuthSession) {
	ctx.Set("session", session)
}

func GetPrincipal(ctx Context) Principal {
	return ctx.Get("principal").(Principal)
}

func SetPrincipal(ctx Context, p Principal) {
	ctx.Set("principal", p)
}

func GetParam(ctx Context, param string) string {
	v := ctx.Param(param)
	if v == "" {
		v = ctx.QueryParam(param)
	}
	return SanitizeParam(v)
}
