package identity_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/open-gov-forms/license-apply/internal/accesscontrol"
	"github.com/open-gov-forms/license-apply/internal/apperror"
	"github.com/open-gov-forms/license-apply/internal/core"
	"github.com/open-gov-forms/license-apply/internal/core/identity"
	"github.com/open-gov-forms/license-apply/internal/database/models"
)

type fakeUserRepository struct {
	users        []models.User
	readErr      error
	transactions int
}

func (f *fakeUserRepository) ReadByEmailAndRole(email, role string) (models.User, error) {
	if f.readErr != nil {
		return models.User{}, f.readErr
	}
	for _, u := range f.users {
		if u.Email == email && u.Role == role {
			return u, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) Transaction(fn func(tx core.DB) error) error {
	f.transactions++
	return fn(nil)
}

func (f *fakeUserRepository) FirstOrCreate(tx core.DB, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email && u.Role == user.Role {
			*user = u
			return nil
		}
	}
	user.ID = uuid.New()
	f.users = append(f.users, *user)
	return nil
}

type fakeRBAC struct {
	grants map[string]string
}

func (f *fakeRBAC) GrantRole(user, role string) error {
	if f.grants == nil {
		f.grants = map[string]string{}
	}
	f.grants[user] = role
	return nil
}

func (f *fakeRBAC) RevokeRole(user, role string) error { return nil }

func (f *fakeRBAC) AllowRole(role string, object accesscontrol.Object, actions []accesscontrol.Action) error {
	return nil
}

func (f *fakeRBAC) IsAllowed(user string, object accesscontrol.Object, action accesscontrol.Action) (bool, error) {
	return true, nil
}

func seededRepository(t *testing.T) *fakeUserRepository {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)
	return &fakeUserRepository{users: []models.User{{
		Model:        models.Model{ID: uuid.New()},
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         "user",
	}}}
}

func TestLogin(t *testing.T) {
	t.Run("should return the principal for valid credentials", func(t *testing.T) {
		svc := identity.NewService(seededRepository(t), &fakeRBAC{})

		principal, err := svc.Login("user@example.com", "password123", core.RoleUser)

		assert.NoError(t, err)
		assert.Equal(t, "user@example.com", principal.Email)
		assert.Equal(t, core.RoleUser, principal.Role)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		svc := identity.NewService(seededRepository(t), &fakeRBAC{})

		_, err := svc.Login("user@example.com", "wrong", core.RoleUser)

		assert.True(t, apperror.IsUnauthorized(err))
	})

	t.Run("should reject an unknown email with the same error", func(t *testing.T) {
		svc := identity.NewService(seededRepository(t), &fakeRBAC{})

		_, wrongPassword := svc.Login("user@example.com", "wrong", core.RoleUser)
		_, unknownEmail := svc.Login("nobody@example.com", "password123", core.RoleUser)

		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	})

	t.Run("should not let an applicant log into the admin panel", func(t *testing.T) {
		svc := identity.NewService(seededRepository(t), &fakeRBAC{})

		_, err := svc.Login("user@example.com", "password123", core.RoleAdmin)

		assert.True(t, apperror.IsUnauthorized(err))
	})

	t.Run("should not disguise a storage fault as a credential failure", func(t *testing.T) {
		repo := seededRepository(t)
		repo.readErr = assert.AnError
		svc := identity.NewService(repo, &fakeRBAC{})

		_, err := svc.Login("user@example.com", "password123", core.RoleUser)

		assert.Error(t, err)
		assert.False(t, apperror.IsUnauthorized(err))
	})
}

func TestSeedDefaultUsers(t *testing.T) {
	viper.Set("SEED_USER_EMAIL", "user@example.com")
	viper.Set("SEED_USER_PASSWORD", "password123")
	viper.Set("SEED_ADMIN_EMAIL", "admin@example.com")
	viper.Set("SEED_ADMIN_PASSWORD", "admin123")
	viper.Set("BCRYPT_COST", bcrypt.MinCost)

	t.Run("should create both principals with their roles in one transaction", func(t *testing.T) {
		repo := &fakeUserRepository{}
		rbac := &fakeRBAC{}
		svc := identity.NewService(repo, rbac)

		assert.NoError(t, svc.SeedDefaultUsers())

		assert.Len(t, repo.users, 2)
		assert.Len(t, rbac.grants, 2)
		assert.Equal(t, 1, repo.transactions)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := identity.NewService(repo, &fakeRBAC{})

		assert.NoError(t, svc.SeedDefaultUsers())
		assert.NoError(t, svc.SeedDefaultUsers())

		assert.Len(t, repo.users, 2)
	})
}
