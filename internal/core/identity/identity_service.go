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
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/open-gov-forms/license-apply/internal/accesscontrol"
	"github.com/open-gov-forms/license-apply/internal/apperror"
	"github.com/open-gov-forms/license-apply/internal/core"
	"github.com/open-gov-forms/license-apply/internal/database/models"
	"github.com/open-gov-forms/license-apply/internal/monitoring"
)

type userRepository interface {
	ReadByEmailAndRole(email, role string) (models.User, error)
	FirstOrCreate(tx core.DB, user *models.User) error
	Transaction(fn func(tx core.DB) error) error
}

type Service struct {
	userRepository userRepository
	rbac           accesscontrol.AccessControl
}

func NewService(userRepository userRepository, rbac accesscontrol.AccessControl) *Service {
	return &Service{
		userRepository: userRepository,
		rbac:           rbac,
	}
}

// Login checks the credentials against the stored bcrypt hash. The same
// error comes back for an unknown email and a wrong password, so the
// login form never leaks which accounts exist.
func (s *Service) Login(email, password string, role core.Role) (core.Principal, error) {
	user, err := s.userRepository.ReadByEmailAndRole(email, string(role))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			// a storage fault is not a credential failure
			return core.Principal{}, apperror.NewInternalError("could not read user", err)
		}
		monitoring.FailedLoginsAmount.WithLabelValues(string(role)).Inc()
		return core.Principal{}, apperror.NewUnauthorizedError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		monitoring.FailedLoginsAmount.WithLabelValues(string(role)).Inc()
		return core.Principal{}, apperror.NewUnauthorizedError("invalid email or password")
	}

	return core.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   role,
	}, nil
}

// SeedDefaultUsers makes sure the two built-in principals exist and hold
// their casbin roles. Idempotent, runs on every startup.
func (s *Service) SeedDefaultUsers() error {
	seeds := []struct {
		email    string
		password string
		role     core.Role
	}{
		{viper.GetString("SEED_USER_EMAIL"), viper.GetString("SEED_USER_PASSWORD"), core.RoleUser},
		{viper.GetString("SEED_ADMIN_EMAIL"), viper.GetString("SEED_ADMIN_PASSWORD"), core.RoleAdmin},
	}

	// both principals land in one transaction - a half seeded login setup
	// would lock out either the applicants or the reviewers
	return s.userRepository.Transaction(func(tx core.DB) error {
		for _, seed := range seeds {
			hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), viper.GetInt("BCRYPT_COST"))
			if err != nil {
				return errors.Wrap(err, "could not hash seed password")
			}

			user := models.User{
				Email:        seed.email,
				PasswordHash: string(hash),
				Role:         string(seed.role),
			}
			if err := s.userRepository.FirstOrCreate(tx, &user); err != nil {
				return errors.Wrapf(err, "could not seed %s principal", seed.role)
			}

			if err := s.rbac.GrantRole(user.ID.String(), string(seed.role)); err != nil {
				return errors.Wrapf(err, "could not grant %s role", seed.role)
			}

			slog.Debug("seeded principal", "email", seed.email, "role", seed.role)
		}

		return nil
	})
}
