package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/open-gov-forms/license-apply/internal/database/models"
)

func TestApplicationStatus(t *testing.T) {
	t.Run("should know the full lifecycle", func(t *testing.T) {
		for _, status := range models.ApplicationStatuses() {
			assert.True(t, status.Valid(), "status %s", status)
		}
	})

	t.Run("should reject anything else", func(t *testing.T) {
		assert.False(t, models.ApplicationStatus("pending").Valid())
		assert.False(t, models.ApplicationStatus("").Valid())
		assert.False(t, models.ApplicationStatus("SUBMITTED").Valid())
	})
}

func TestStringList(t *testing.T) {
	t.Run("should accept a scalar as a one element list", func(t *testing.T) {
		var l models.StringList
		assert.NoError(t, json.Unmarshal([]byte(`"sale-on"`), &l))
		assert.Equal(t, models.StringList{"sale-on"}, l)
	})

	t.Run("should accept an array", func(t *testing.T) {
		var l models.StringList
		assert.NoError(t, json.Unmarshal([]byte(`["sale-on","live-music"]`), &l))
		assert.Equal(t, models.StringList{"sale-on", "live-music"}, l)
	})

	t.Run("should refuse a number", func(t *testing.T) {
		var l models.StringList
		assert.Error(t, json.Unmarshal([]byte(`42`), &l))
	})

	t.Run("should survive a details round trip", func(t *testing.T) {
		raw := `{"licenseType":"premises","activities":"sale-on","operatingHours":{"monday":"09:00-23:00"}}`

		var details models.LicenseDetails
		assert.NoError(t, json.Unmarshal([]byte(raw), &details))
		assert.Equal(t, models.StringList{"sale-on"}, details.Activities)
		assert.Equal(t, "09:00-23:00", details.OperatingHours.Monday)
	})
}
