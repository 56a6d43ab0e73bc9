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

import (
	"log"

	gormadapter "github.com/casbin/gorm-adapter/v3"

	"github.com/casbin/casbin/v2"
	"gorm.io/gorm"
)

var _ AccessControl = &CasbinRBAC{}
var casbinEnforcer *casbin.Enforcer

type CasbinRBAC struct {
	enforcer *casbin.Enforcer
}

func NewCasbinRBAC(db *gorm.DB, modelPath string) (*CasbinRBAC, error) {
	enforcer, err := buildEnforcer(db, modelPath)
	if err != nil {
		return nil, err
	}
	return &CasbinRBAC{
		enforcer: enforcer,
	}, nil
}

func (c *CasbinRBAC) GrantRole(user, role string) error {
	_, err := c.enforcer.AddRoleForUser("user::"+user, "role::"+role)
	return err
}

func (c *CasbinRBAC) RevokeRole(user, role string) error {
	_, err := c.enforcer.DeleteRoleForUser("user::"+user, "role::"+role)
	return err
}

func (c *CasbinRBAC) AllowRole(role string, object Object, actions []Action) error {
	policies := make([][]string, len(actions))
	for i, action := range actions {
		policies[i] = []string{"role::" + role, "obj::" + string(object), "act::" + string(action)}
	}

	_, err := c.enforcer.AddPolicies(policies)
	return err
}

func (c *CasbinRBAC) IsAllowed(user string, object Object, action Action) (bool, error) {
	permissions, err := c.enforcer.GetImplicitPermissionsForUser("user::" + user)
	if err != nil {
		return false, err
	}

	// check for the permissions
	for _, p := range permissions {
		if p[1] == "obj::"+string(object) && p[2] == "act::"+string(action) {
			return true, nil
		}
	}
	return false, nil
}

func buildEnforcer(db *gorm.DB, modelPath string) (*casbin.Enforcer, error) {
	if casbinEnforcer != nil {
		return casbinEnforcer, nil
	}
	// the adapter creates its "casbin_rule" table automatically if it does not
	// exist yet.
	a, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(modelPath, a)
	if err != nil {
		return nil, err
	}

	e.EnableLog(false)

	// Load the policy from DB.
	if err = e.LoadPolicy(); err != nil {
		log.Println("LoadPolicy failed, err: ", err)
	}

	casbinEnforcer = e

	return e, nil
}
