package review_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/open-gov-forms/license-apply/internal/auth"
	"github.com/open-gov-forms/license-apply/internal/core"
	"github.com/open-gov-forms/license-apply/internal/core/application"
	"github.com/open-gov-forms/license-apply/internal/core/review"
	"github.com/open-gov-forms/license-apply/internal/database/models"
)

type fakeApplicationRepository struct {
	listResult    []models.Application
	updateRows    int64
	updateErr     error
	updatedStatus models.ApplicationStatus
}

func (f *fakeApplicationRepository) CreateApplication(tx core.DB, app *models.Application) error {
	return nil
}

func (f *fakeApplicationRepository) ReadByApplicationID(applicationID string) (models.Application, error) {
	return models.Application{ApplicationID: applicationID}, nil
}

func (f *fakeApplicationRepository) ListPaged(limit, offset int, status *models.ApplicationStatus) ([]models.Application, error) {
	return f.listResult, nil
}

func (f *fakeApplicationRepository) UpdateStatus(tx core.DB, applicationID string, status models.ApplicationStatus) (int64, error) {
	f.updatedStatus = status
	return f.updateRows, f.updateErr
}

func (f *fakeApplicationRepository) DeleteByApplicationID(tx core.DB, applicationID string) (int64, error) {
	return 1, nil
}

func reviewTestServer(t *testing.T, repo *fakeApplicationRepository) *echo.Echo {
	t.Helper()

	store := auth.NewStore(time.Minute)
	t.Cleanup(store.Close)
	session := store.New()

	controller := review.NewHTTPController(application.NewService(repo))

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			core.SetSession(c, session)
			return next(c)
		}
	})
	e.GET("/admin/applications", controller.Panel)
	e.POST("/admin/applications/:id/status", controller.Decide)
	return e
}

func TestPanel(t *testing.T) {
	t.Run("should list the applications with the banner passthrough", func(t *testing.T) {
		repo := &fakeApplicationRepository{
			listResult: []models.Application{{ApplicationID: "a"}, {ApplicationID: "b"}},
		}
		e := reviewTestServer(t, repo)

		req := httptest.NewRequest(http.MethodGet, "/admin/applications?success=Application+approved+successfully", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"a"`)
		assert.Contains(t, rec.Body.String(), "Application approved successfully")
	})
}

func TestDecide(t *testing.T) {
	decide := func(t *testing.T, repo *fakeApplicationRepository, status string) *httptest.ResponseRecorder {
		t.Helper()
		e := reviewTestServer(t, repo)
		form := url.Values{"status": {status}}
		req := httptest.NewRequest(http.MethodPost, "/admin/applications/some-id/status", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("should approve and redirect with a success banner", func(t *testing.T) {
		repo := &fakeApplicationRepository{updateRows: 1}
		rec := decide(t, repo, "approved")

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		location := rec.Header().Get(echo.HeaderLocation)
		assert.Contains(t, location, "success=")
		assert.Contains(t, location, "approved")
		assert.Equal(t, models.StatusApproved, repo.updatedStatus)
	})

	t.Run("should reject and redirect with a success banner", func(t *testing.T) {
		repo := &fakeApplicationRepository{updateRows: 1}
		rec := decide(t, repo, "rejected")

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "rejected")
	})

	t.Run("should refuse the under-review status on the panel", func(t *testing.T) {
		repo := &fakeApplicationRepository{updateRows: 1}
		rec := decide(t, repo, "under-review")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, repo.updatedStatus)
	})

	t.Run("should redirect with an error banner when the update fails", func(t *testing.T) {
		repo := &fakeApplicationRepository{updateRows: 0}
		rec := decide(t, repo, "approved")

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "error=")
	})
}
