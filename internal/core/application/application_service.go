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

package application

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/open-gov-forms/license-apply/internal/apperror"
	"github.com/open-gov-forms/license-apply/internal/core"
	"github.com/open-gov-forms/license-apply/internal/database"
	"github.com/open-gov-forms/license-apply/internal/database/models"
	"github.com/open-gov-forms/license-apply/internal/monitoring"
	"gorm.io/gorm"
)

// DeclarationConfirmed is the only value accepted as an affirmative
// declaration.
const DeclarationConfirmed = "yes"

type applicationRepository interface {
	CreateApplication(tx core.DB, application *models.Application) error
	ReadByApplicationID(applicationID string) (models.Application, error)
	ListPaged(limit, offset int, status *models.ApplicationStatus) ([]models.Application, error)
	UpdateStatus(tx core.DB, applicationID string, status models.ApplicationStatus) (int64, error)
	DeleteByApplicationID(tx core.DB, applicationID string) (int64, error)
}

type Service struct {
	applicationRepository applicationRepository
}

func NewService(applicationRepository applicationRepository) *Service {
	return &Service{
		applicationRepository: applicationRepository,
	}
}

// CreateApplication validates and sanitizes a complete payload, assigns a
// fresh identifier and persists it. Validation happens fully in memory before
// any write is attempted; a failing payload is a no-op.
func (s *Service) CreateApplication(payload Payload) (CreateResult, error) {
	if err := validatePayload(payload); err != nil {
		return CreateResult{}, err
	}

	application := models.Application{
		ApplicationID:   uuid.NewString(),
		PersonalDetails: sanitizePersonalDetails(*payload.PersonalDetails),
		BusinessDetails: sanitizeBusinessDetails(*payload.BusinessDetails),
		LicenseDetails:  sanitizeLicenseDetails(*payload.LicenseDetails),
		Declaration:     payload.Declaration,
		Status:          models.StatusSubmitted,
		SubmittedAt:     time.Now(),
	}

	err := s.applicationRepository.CreateApplication(nil, &application)
	if errors.Is(err, database.ErrDuplicateKey) {
		// identifier collision - regenerate once and retry
		application.ApplicationID = uuid.NewString()
		err = s.applicationRepository.CreateApplication(nil, &application)
	}
	if err != nil {
		return CreateResult{}, classify(err, "failed to create application")
	}

	monitoring.ApplicationsSubmittedAmount.Inc()

	return CreateResult{
		ApplicationID: application.ApplicationID,
		Status:        application.Status,
		SubmittedAt:   application.SubmittedAt,
	}, nil
}

// ProcessFromFormState is the wizard's entry point into CreateApplication. It
// re-checks the declaration independent of the step level validation and maps
// the flat session state onto the three detail sub-records.
func (s *Service) ProcessFromFormState(state *core.FormState, declaration string) (CreateResult, error) {
	if state == nil {
		return CreateResult{}, apperror.NewValidationError("no form data provided")
	}

	if declaration != DeclarationConfirmed {
		slog.Warn("submission blocked, declaration not confirmed", "declaration", declaration)
		return CreateResult{}, apperror.NewValidationError("declaration must be confirmed")
	}

	payload := Payload{
		PersonalDetails: extractPersonalDetails(state),
		BusinessDetails: extractBusinessDetails(state),
		LicenseDetails:  extractLicenseDetails(state),
		Declaration:     declaration,
	}

	return s.CreateApplication(payload)
}

func (s *Service) GetApplication(applicationID string) (models.Application, error) {
	if applicationID == "" {
		return models.Application{}, apperror.NewValidationError("application ID is required")
	}

	application, err := s.applicationRepository.ReadByApplicationID(applicationID)
	if err != nil {
		return models.Application{}, classify(err, "failed to retrieve application")
	}
	return application, nil
}

func (s *Service) GetApplications(options ListOptions) (Page, error) {
	if options.Limit < 1 || options.Limit > 100 {
		return Page{}, apperror.NewValidationError("limit must be between 1 and 100")
	}
	if options.Offset < 0 {
		return Page{}, apperror.NewValidationError("offset must be non-negative")
	}

	var status *models.ApplicationStatus
	if options.Status != "" {
		st := models.ApplicationStatus(options.Status)
		if !st.Valid() {
			return Page{}, apperror.NewValidationError("invalid status filter: " + options.Status)
		}
		status = &st
	}

	applications, err := s.applicationRepository.ListPaged(options.Limit, options.Offset, status)
	if err != nil {
		return Page{}, classify(err, "failed to retrieve applications")
	}

	return Page{
		Applications: applications,
		Pagination: database.PageInfo{
			Limit:  options.Limit,
			Offset: options.Offset,
			Count:  len(applications),
		},
	}, nil
}

// UpdateApplicationStatus moves an application to a new status. The existence
// check and the update can race with a concurrent delete; a zero row count
// from the update surfaces as not-found either way.
func (s *Service) UpdateApplicationStatus(applicationID string, status string) error {
	st := models.ApplicationStatus(status)
	if !st.Valid() {
		return apperror.NewValidationError("invalid status: " + status)
	}

	if _, err := s.GetApplication(applicationID); err != nil {
		return err
	}

	changes, err := s.applicationRepository.UpdateStatus(nil, applicationID, st)
	if err != nil {
		return classify(err, "failed to update application status")
	}
	if changes == 0 {
		return apperror.NewNotFoundError("application")
	}

	monitoring.StatusTransitionsAmount.WithLabelValues(status).Inc()
	return nil
}

func (s *Service) DeleteApplication(applicationID string) error {
	if _, err := s.GetApplication(applicationID); err != nil {
		return err
	}

	changes, err := s.applicationRepository.DeleteByApplicationID(nil, applicationID)
	if err != nil {
		return classify(err, "failed to delete application")
	}
	if changes == 0 {
		return apperror.NewNotFoundError("application")
	}
	return nil
}

// classify wraps an unexpected lower layer fault into the internal category
// while passing already classified errors and storage classifications through
// unchanged in meaning.
func classify(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case apperror.Classified(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NewNotFoundError("application")
	case errors.Is(err, database.ErrInvalidStatus):
		return apperror.NewValidationError(err.Error())
	default:
		return apperror.NewInternalError(message, err)
	}
}

func validatePayload(payload Payload) error {
	if payload.PersonalDetails == nil {
		return apperror.NewValidationError("personalDetails is required and must be an object")
	}
	if payload.BusinessDetails == nil {
		return apperror.NewValidationError("businessDetails is required and must be an object")
	}
	if payload.LicenseDetails == nil {
		return apperror.NewValidationError("licenseDetails is required and must be an object")
	}

	var details []apperror.FieldError
	requireField(&details, "personalDetails.firstName", payload.PersonalDetails.FirstName)
	requireField(&details, "personalDetails.lastName", payload.PersonalDetails.LastName)
	requireField(&details, "personalDetails.email", payload.PersonalDetails.Email)
	requireField(&details, "personalDetails.phoneNumber", payload.PersonalDetails.PhoneNumber)
	requireField(&details, "businessDetails.businessName", payload.BusinessDetails.BusinessName)
	requireField(&details, "businessDetails.businessType", payload.BusinessDetails.BusinessType)
	requireField(&details, "licenseDetails.licenseType", payload.LicenseDetails.LicenseType)
	requireField(&details, "licenseDetails.premisesType", payload.LicenseDetails.PremisesType)

	if len(details) > 0 {
		return apperror.NewValidationError("application payload is incomplete", details...)
	}
	return nil
}

func requireField(details *[]apperror.FieldError, path, value string) {
	if strings.TrimSpace(value) == "" {
		*details = append(*details, apperror.FieldError{
			Path:    path,
			Message: path + " is required",
		})
	}
}

func extractPersonalDetails(state *core.FormState) *models.PersonalDetails {
	return &models.PersonalDetails{
		FirstName:       state.FirstName,
		LastName:        state.LastName,
		DobDay:          state.DobDay,
		DobMonth:        state.DobMonth,
		DobYear:         state.DobYear,
		Email:           state.Email,
		PhoneNumber:     state.PhoneNumber,
		AddressLine1:    state.AddressLine1,
		AddressLine2:    state.AddressLine2,
		AddressTown:     state.AddressTown,
		AddressCounty:   state.AddressCounty,
		AddressPostcode: state.AddressPostcode,
	}
}

func extractBusinessDetails(state *core.FormState) *models.BusinessDetails {
	return &models.BusinessDetails{
		BusinessName:            state.BusinessName,
		CompanyNumber:           state.CompanyNumber,
		BusinessType:            state.BusinessType,
		BusinessAddressLine1:    state.BusinessAddressLine1,
		BusinessAddressLine2:    state.BusinessAddressLine2,
		BusinessAddressTown:     state.BusinessAddressTown,
		BusinessAddressCounty:   state.BusinessAddressCounty,
		BusinessAddressPostcode: state.BusinessAddressPostcode,
		BusinessPhone:           state.BusinessPhone,
		BusinessEmail:           state.BusinessEmail,
	}
}

func extractLicenseDetails(state *core.FormState) *models.LicenseDetails {
	return &models.LicenseDetails{
		LicenseType:             state.LicenseType,
		PremisesType:            state.PremisesType,
		PremisesAddressLine1:    state.PremisesAddressLine1,
		PremisesAddressLine2:    state.PremisesAddressLine2,
		PremisesAddressTown:     state.PremisesAddressTown,
		PremisesAddressCounty:   state.PremisesAddressCounty,
		PremisesAddressPostcode: state.PremisesAddressPostcode,
		Activities:              models.StringList(state.Activities),
		OperatingHours: models.OperatingHours{
			Monday:    state.MondayHours,
			Tuesday:   state.TuesdayHours,
			Wednesday: state.WednesdayHours,
			Thursday:  state.ThursdayHours,
			Friday:    state.FridayHours,
			Saturday:  state.SaturdayHours,
			Sunday:    state.SundayHours,
		},
	}
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func sanitizeString(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

func sanitizePhone(phone string) string {
	return whitespaceRe.ReplaceAllString(phone, "")
}

func sanitizePostcode(postcode string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.ToUpper(postcode), " "))
}

func sanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizePersonalDetails(details models.PersonalDetails) models.PersonalDetails {
	details.FirstName = sanitizeString(details.FirstName)
	details.LastName = sanitizeString(details.LastName)
	details.Email = sanitizeEmail(details.Email)
	details.PhoneNumber = sanitizePhone(details.PhoneNumber)
	details.AddressLine1 = sanitizeString(details.AddressLine1)
	details.AddressLine2 = sanitizeString(details.AddressLine2)
	details.AddressTown = sanitizeString(details.AddressTown)
	details.AddressCounty = sanitizeString(details.AddressCounty)
	details.AddressPostcode = sanitizePostcode(details.AddressPostcode)
	return details
}

func sanitizeBusinessDetails(details models.BusinessDetails) models.BusinessDetails {
	details.BusinessName = sanitizeString(details.BusinessName)
	details.CompanyNumber = sanitizeString(details.CompanyNumber)
	details.BusinessAddressLine1 = sanitizeString(details.BusinessAddressLine1)
	details.BusinessAddressLine2 = sanitizeString(details.BusinessAddressLine2)
	details.BusinessAddressTown = sanitizeString(details.BusinessAddressTown)
	details.BusinessAddressCounty = sanitizeString(details.BusinessAddressCounty)
	details.BusinessAddressPostcode = sanitizePostcode(details.BusinessAddressPostcode)
	details.BusinessPhone = sanitizePhone(details.BusinessPhone)
	details.BusinessEmail = sanitizeEmail(details.BusinessEmail)
	return details
}

func sanitizeLicenseDetails(details models.LicenseDetails) models.LicenseDetails {
	if details.Activities == nil {
		details.Activities = models.StringList{}
	}
	details.PremisesAddressLine1 = sanitizeString(details.PremisesAddressLine1)
	details.PremisesAddressLine2 = sanitizeString(details.PremisesAddressLine2)
	details.PremisesAddressTown = sanitizeString(details.PremisesAddressTown)
	details.PremisesAddressCounty = sanitizeString(details.PremisesAddressCounty)
	details.PremisesAddressPostcode = sanitizePostcode(details.PremisesAddressPostcode)
	return details
}
