package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/open-gov-forms/license-apply/internal/auth"
	"github.com/open-gov-forms/license-apply/internal/core"
)

func TestStore(t *testing.T) {
	t.Run("should hand out resolvable sessions", func(t *testing.T) {
		store := auth.NewStore(time.Minute)
		defer store.Close()

		session := store.New()
		assert.NotEmpty(t, session.ID())
		assert.NotEmpty(t, session.CSRFToken())
		assert.NotEqual(t, session.ID(), session.CSRFToken())

		resolved, ok := store.Get(session.ID())
		assert.True(t, ok)
		assert.Same(t, session, resolved)
	})

	t.Run("should not resolve an unknown identifier", func(t *testing.T) {
		store := auth.NewStore(time.Minute)
		defer store.Close()

		_, ok := store.Get("does-not-exist")
		assert.False(t, ok)
	})

	t.Run("should expire idle sessions", func(t *testing.T) {
		store := auth.NewStore(time.Nanosecond)
		defer store.Close()

		session := store.New()
		time.Sleep(time.Millisecond)

		_, ok := store.Get(session.ID())
		assert.False(t, ok)
	})

	t.Run("should not resolve a destroyed session", func(t *testing.T) {
		store := auth.NewStore(time.Minute)
		defer store.Close()

		session := store.New()
		session.Destroy()

		_, ok := store.Get(session.ID())
		assert.False(t, ok)
	})
}

func TestSessionPrincipals(t *testing.T) {
	store := auth.NewStore(time.Minute)
	defer store.Close()

	t.Run("should keep principals per role", func(t *testing.T) {
		session := store.New()

		user := core.Principal{UserID: uuid.New(), Email: "user@example.com", Role: core.RoleUser}
		admin := core.Principal{UserID: uuid.New(), Email: "admin@example.com", Role: core.RoleAdmin}
		session.SetPrincipal(user)
		session.SetPrincipal(admin)

		got, ok := session.Principal(core.RoleUser)
		assert.True(t, ok)
		assert.Equal(t, user, got)

		session.ClearPrincipal(core.RoleUser)
		_, ok = session.Principal(core.RoleUser)
		assert.False(t, ok)

		// the admin principal survives the applicant logout
		_, ok = session.Principal(core.RoleAdmin)
		assert.True(t, ok)
	})

	t.Run("should keep the form state across requests", func(t *testing.T) {
		session := store.New()
		session.FormState().FirstName = "Jane"

		resolved, _ := store.Get(session.ID())
		assert.Equal(t, "Jane", resolved.FormState().FirstName)
	})
}
