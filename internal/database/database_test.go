package database_test

import (
	"encoding/json"
	"errors"
	"testing"

	wrap "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/open-gov-forms/license-apply/internal/database"
)

func TestIsDuplicateKeyError(t *testing.T) {
	t.Run("should match the wrapped sentinel", func(t *testing.T) {
		err := wrap.WithMessage(database.ErrDuplicateKey, "insert failed")
		assert.True(t, database.IsDuplicateKeyError(err))
	})

	t.Run("should match gorm's own translation", func(t *testing.T) {
		assert.True(t, database.IsDuplicateKeyError(gorm.ErrDuplicatedKey))
	})

	t.Run("should match the raw postgres message", func(t *testing.T) {
		err := errors.New(`ERROR: duplicate key value violates unique constraint "idx_applications_application_id" (SQLSTATE 23505)`)
		assert.True(t, database.IsDuplicateKeyError(err))
	})

	t.Run("should not match unrelated errors", func(t *testing.T) {
		assert.False(t, database.IsDuplicateKeyError(nil))
		assert.False(t, database.IsDuplicateKeyError(assert.AnError))
	})
}

func TestIsCorruptDataError(t *testing.T) {
	t.Run("should match the wrapped sentinel", func(t *testing.T) {
		err := wrap.WithMessage(database.ErrCorruptData, "read failed")
		assert.True(t, database.IsCorruptDataError(err))
	})

	t.Run("should match a json syntax error", func(t *testing.T) {
		var dst map[string]any
		err := json.Unmarshal([]byte(`{"firstName":`), &dst)
		assert.True(t, database.IsCorruptDataError(err))
	})

	t.Run("should match a json type mismatch", func(t *testing.T) {
		var dst struct {
			FirstName string `json:"firstName"`
		}
		err := json.Unmarshal([]byte(`{"firstName": 42}`), &dst)
		assert.True(t, database.IsCorruptDataError(err))
	})

	t.Run("should not match unrelated errors", func(t *testing.T) {
		assert.False(t, database.IsCorruptDataError(nil))
		assert.False(t, database.IsCorruptDataError(assert.AnError))
	})
}
