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

package accesscontrol

type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionSubmit Action = "submit"
	ActionReview Action = "review"
)

type Object string

const (
	ObjectWizard       Object = "wizard"
	ObjectApplications Object = "applications"
)

type AccessControl interface {
	GrantRole(user, role string) error
	RevokeRole(user, role string) error
	AllowRole(role string, object Object, actions []Action) error
	IsAllowed(user string, object Object, action Action) (bool, error)
}

// Bootstrap installs the static role permissions: applicants may work the
// wizard, administrators may review and read submissions.
func Bootstrap(rbac AccessControl) error {
	if err := rbac.AllowRole("user", ObjectWizard, []Action{
		ActionRead,
		ActionSubmit,
	}); err != nil {
		return err
	}

	return rbac.AllowRole("admin", ObjectApplications, []Action{
		ActionRead,
		ActionReview,
		ActionUpdate,
	})
}
