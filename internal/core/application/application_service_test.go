package application_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/open-gov-forms/license-apply/internal/apperror"
	"github.com/open-gov-forms/license-apply/internal/core"
	"github.com/open-gov-forms/license-apply/internal/core/application"
	"github.com/open-gov-forms/license-apply/internal/database"
	"github.com/open-gov-forms/license-apply/internal/database/models"
)

type fakeApplicationRepository struct {
	created      []models.Application
	createErrs   []error
	readResult   models.Application
	readErr      error
	listResult   []models.Application
	listErr      error
	updateRows   int64
	updateErr    error
	deleteRows   int64
	deleteErr    error
	updateCalled bool
}

func (f *fakeApplicationRepository) CreateApplication(tx core.DB, app *models.Application) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	f.created = append(f.created, *app)
	return nil
}

func (f *fakeApplicationRepository) ReadByApplicationID(applicationID string) (models.Application, error) {
	return f.readResult, f.readErr
}

func (f *fakeApplicationRepository) ListPaged(limit, offset int, status *models.ApplicationStatus) ([]models.Application, error) {
	return f.listResult, f.listErr
}

func (f *fakeApplicationRepository) UpdateStatus(tx core.DB, applicationID string, status models.ApplicationStatus) (int64, error) {
	f.updateCalled = true
	return f.updateRows, f.updateErr
}

func (f *fakeApplicationRepository) DeleteByApplicationID(tx core.DB, applicationID string) (int64, error) {
	return f.deleteRows, f.deleteErr
}

func validPayload() application.Payload {
	return application.Payload{
		PersonalDetails: &models.PersonalDetails{
			FirstName:       "  Jane ",
			LastName:        "Smith",
			Email:           " Jane.Smith@Example.COM ",
			PhoneNumber:     "07700 900 123",
			AddressPostcode: "sw1a 1aa",
		},
		BusinessDetails: &models.BusinessDetails{
			BusinessName: "The  Red   Lion",
			BusinessType: "pub",
		},
		LicenseDetails: &models.LicenseDetails{
			LicenseType:  "premises",
			PremisesType: "pub",
		},
		Declaration: "yes",
	}
}

func TestCreateApplication(t *testing.T) {
	t.Run("should sanitize the payload before persisting", func(t *testing.T) {
		repo := &fakeApplicationRepository{}
		svc := application.NewService(repo)

		result, err := svc.CreateApplication(validPayload())

		assert.NoError(t, err)
		assert.NotEmpty(t, result.ApplicationID)
		assert.Equal(t, models.StatusSubmitted, result.Status)

		assert.Len(t, repo.created, 1)
		stored := repo.created[0]
		assert.Equal(t, "Jane", stored.PersonalDetails.FirstName)
		assert.Equal(t, "jane.smith@example.com", stored.PersonalDetails.Email)
		assert.Equal(t, "07700900123", stored.PersonalDetails.PhoneNumber)
		assert.Equal(t, "SW1A 1AA", stored.PersonalDetails.AddressPostcode)
		assert.Equal(t, "The Red Lion", stored.BusinessDetails.BusinessName)
		// activities never persist as null
		assert.NotNil(t, stored.LicenseDetails.Activities)
	})

	t.Run("should not persist anything when a required field is missing", func(t *testing.T) {
		repo := &fakeApplicationRepository{}
		svc := application.NewService(repo)

		payload := validPayload()
		payload.PersonalDetails.Email = "   "

		_, err := svc.CreateApplication(payload)

		assert.True(t, apperror.IsValidation(err))
		assert.Empty(t, repo.created)

		details := apperror.DetailsOf(err)
		assert.Len(t, details, 1)
		assert.Equal(t, "personalDetails.email", details[0].Path)
	})

	t.Run("should reject a nil detail block", func(t *testing.T) {
		repo := &fakeApplicationRepository{}
		svc := application.NewService(repo)

		payload := validPayload()
		payload.LicenseDetails = nil

		_, err := svc.CreateApplication(payload)

		assert.True(t, apperror.IsValidation(err))
		assert.Empty(t, repo.created)
	})

	t.Run("should retry once with a fresh identifier on a duplicate key", func(t *testing.T) {
		repo := &fakeApplicationRepository{
			createErrs: []error{errors.WithMessage(database.ErrDuplicateKey, "applications.application_id")},
		}
		svc := application.NewService(repo)

		result, err := svc.CreateApplication(validPayload())

		assert.NoError(t, err)
		assert.Len(t, repo.created, 1)
		assert.Equal(t, result.ApplicationID, repo.created[0].ApplicationID)
	})

	t.Run("should give up when the retry collides as well", func(t *testing.T) {
		repo := &fakeApplicationRepository{
			createErrs: []error{database.ErrDuplicateKey, database.ErrDuplicateKey},
		}
		svc := application.NewService(repo)

		_, err := svc.CreateApplication(validPayload())

		assert.Error(t, err)
		assert.Empty(t, repo.created)
	})
}

func TestProcessFromFormState(t *testing.T) {
	t.Run("should refuse an unconfirmed declaration", func(t *testing.T) {
		repo := &fakeApplicationRepository{}
		svc := application.NewService(repo)

		_, err := svc.ProcessFromFormState(&core.FormState{}, "no")

		assert.True(t, apperror.IsValidation(err))
		assert.Empty(t, repo.created)
	})

	t.Run("should refuse a missing form state", func(t *testing.T) {
		svc := application.NewService(&fakeApplicationRepository{})

		_, err := svc.ProcessFromFormState(nil, "yes")

		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("should map the flat state onto the detail sub-records", func(t *testing.T) {
		repo := &fakeApplicationRepository{}
		svc := application.NewService(repo)

		state := &core.FormState{
			FirstName:    "Jane",
			LastName:     "Smith",
			Email:        "jane@example.com",
			PhoneNumber:  "07700900123",
			BusinessName: "The Red Lion",
			BusinessType: "pub",
			LicenseType:  "premises",
			PremisesType: "pub",
			Activities:   []string{"sale-on"},
			MondayHours:  "09:00-23:00",
		}

		_, err := svc.ProcessFromFormState(state, "yes")

		assert.NoError(t, err)
		assert.Len(t, repo.created, 1)
		stored := repo.created[0]
		assert.Equal(t, models.StringList{"sale-on"}, stored.LicenseDetails.Activities)
		assert.Equal(t, "09:00-23:00", stored.LicenseDetails.OperatingHours.Monday)
		assert.Equal(t, "yes", stored.Declaration)
	})
}

func TestGetApplications(t *testing.T) {
	t.Run("should reject limits outside 1 to 100", func(t *testing.T) {
		svc := application.NewService(&fakeApplicationRepository{})

		for _, limit := range []int{0, -1, 101} {
			_, err := svc.GetApplications(application.ListOptions{Limit: limit})
			assert.True(t, apperror.IsValidation(err), "limit %d should fail", limit)
		}
	})

	t.Run("should accept the boundary limits", func(t *testing.T) {
		svc := application.NewService(&fakeApplicationRepository{})

		for _, limit := range []int{1, 100} {
			_, err := svc.GetApplications(application.ListOptions{Limit: limit})
			assert.NoError(t, err, "limit %d should pass", limit)
		}
	})

	t.Run("should reject a negative offset", func(t *testing.T) {
		svc := application.NewService(&fakeApplicationRepository{})

		_, err := svc.GetApplications(application.ListOptions{Limit: 10, Offset: -1})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("should reject an unknown status filter", func(t *testing.T) {
		svc := application.NewService(&fakeApplicationRepository{})

		_, err := svc.GetApplications(application.ListOptions{Limit: 10, Status: "pending"})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("should report the page info", func(t *testing.T) {
		repo := &fakeApplicationRepository{
			listResult: []models.Application{{ApplicationID: "a"}, {ApplicationID: "b"}},
		}
		svc := application.NewService(repo)

		page, err := svc.GetApplications(application.ListOptions{Limit: 50, Offset: 10})

		assert.NoError(t, err)
		assert.Equal(t, 50, page.Pagination.Limit)
		assert.Equal(t, 10, page.Pagination.Offset)
		assert.Equal(t, 2, page.Pagination.Count)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	t.Run("should reject an invalid status before touching storage", func(t *testing.T) {
		repo := &fakeApplicationRepository{}
		svc := application.NewService(repo)

		err := svc.UpdateApplicationStatus("some-id", "pending")

		assert.True(t, apperror.IsValidation(err))
		assert.False(t, repo.updateCalled)
	})

	t.Run("should accept every status of the lifecycle", func(t *testing.T) {
		for _, status := range models.ApplicationStatuses() {
			repo := &fakeApplicationRepository{updateRows: 1}
			svc := application.NewService(repo)

			err := svc.UpdateApplicationStatus("some-id", string(status))
			assert.NoError(t, err, "status %s should pass", status)
		}
	})

	t.Run("should translate zero affected rows into not found", func(t *testing.T) {
		repo := &fakeApplicationRepository{updateRows: 0}
		svc := application.NewService(repo)

		err := svc.UpdateApplicationStatus("some-id", "approved")

		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestDeleteApplication(t *testing.T) {
	t.Run("should translate zero affected rows into not found", func(t *testing.T) {
		repo := &fakeApplicationRepository{deleteRows: 0}
		svc := application.NewService(repo)

		err := svc.DeleteApplication("some-id")

		assert.True(t, apperror.IsNotFound(err))
	})
}
