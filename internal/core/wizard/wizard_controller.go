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

package wizard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/open-gov-forms/license-apply/internal/apperror"
	"github.com/open-gov-forms/license-apply/internal/core"
	"github.com/open-gov-forms/license-apply/internal/core/application"
)

// StepView is the render payload for a single wizard step. The template
// layer consumes it as-is.
type StepView struct {
	Step      string               `json:"step"`
	Data      any                  `json:"data"`
	Errors    []apperror.FieldError `json:"errors,omitempty"`
	CSRFToken string               `json:"csrfToken"`
}

type HTTPController struct {
	applicationService *application.Service
}

func NewHTTPController(applicationService *application.Service) *HTTPController {
	return &HTTPController{applicationService: applicationService}
}

func (c *HTTPController) PersonalDetails(ctx core.Context) error {
	session := core.GetSession(ctx)
	return ctx.JSON(http.StatusOK, StepView{
		Step:      StepPersonalDetails,
		Data:      personalDetailsFromState(session.FormState()),
		CSRFToken: session.CSRFToken(),
	})
}

func (c *HTTPController) SubmitPersonalDetails(ctx core.Context) error {
	var form PersonalDetailsForm
	if err := ctx.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}

	session := core.GetSession(ctx)
	if errs := form.Validate(time.Now()); len(errs) > 0 {
		return ctx.JSON(http.StatusBadRequest, StepView{
			Step:      StepPersonalDetails,
			Data:      form,
			Errors:    errs,
			CSRFToken: session.CSRFToken(),
		})
	}

	form.Apply(session.FormState())
	return ctx.Redirect(http.StatusSeeOther, "/business-details")
}

func (c *HTTPController) BusinessDetails(ctx core.Context) error {
	session := core.GetSession(ctx)
	return ctx.JSON(http.StatusOK, StepView{
		Step:      StepBusinessDetails,
		Data:      businessDetailsFromState(session.FormState()),
		CSRFToken: session.CSRFToken(),
	})
}

func (c *HTTPController) SubmitBusinessDetails(ctx core.Context) error {
	var form BusinessDetailsForm
	if err := ctx.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}

	session := core.GetSession(ctx)
	if errs := form.Validate(time.Now()); len(errs) > 0 {
		return ctx.JSON(http.StatusBadRequest, StepView{
			Step:      StepBusinessDetails,
			Data:      form,
			Errors:    errs,
			CSRFToken: session.CSRFToken(),
		})
	}

	form.Apply(session.FormState())
	return ctx.Redirect(http.StatusSeeOther, "/license-details")
}

func (c *HTTPController) LicenseDetails(ctx core.Context) error {
	session := core.GetSession(ctx)
	return ctx.JSON(http.StatusOK, StepView{
		Step:      StepLicenseDetails,
		Data:      licenseDetailsFromState(session.FormState()),
		CSRFToken: session.CSRFToken(),
	})
}

func (c *HTTPController) SubmitLicenseDetails(ctx core.Context) error {
	var form LicenseDetailsForm
	if err := ctx.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}

	session := core.GetSession(ctx)
	if errs := form.Validate(time.Now()); len(errs) > 0 {
		return ctx.JSON(http.StatusBadRequest, StepView{
			Step:      StepLicenseDetails,
			Data:      form,
			Errors:    errs,
			CSRFToken: session.CSRFToken(),
		})
	}

	form.Apply(session.FormState())
	return ctx.Redirect(http.StatusSeeOther, "/summary")
}

func (c *HTTPController) Summary(ctx core.Context) error {
	session := core.GetSession(ctx)
	return ctx.JSON(http.StatusOK, StepView{
		Step:      StepSummary,
		Data:      session.FormState(),
		CSRFToken: session.CSRFToken(),
	})
}

// SubmitSummary finalizes the application. The declaration gate and the
// persistence step both live in the application service, so the API path
// and the wizard path cannot drift apart.
func (c *HTTPController) SubmitSummary(ctx core.Context) error {
	var form DeclarationForm
	if err := ctx.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}

	session := core.GetSession(ctx)
	if errs := form.Validate(time.Now()); len(errs) > 0 {
		return ctx.JSON(http.StatusBadRequest, StepView{
			Step:      StepSummary,
			Data:      session.FormState(),
			Errors:    errs,
			CSRFToken: session.CSRFToken(),
		})
	}

	result, err := c.applicationService.ProcessFromFormState(session.FormState(), form.Declaration)
	if err != nil {
		if apperror.IsValidation(err) {
			return ctx.JSON(http.StatusBadRequest, StepView{
				Step:      StepSummary,
				Data:      session.FormState(),
				Errors:    apperror.DetailsOf(err),
				CSRFToken: session.CSRFToken(),
			})
		}
		slog.Error("could not submit application", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not submit application").WithInternal(err)
	}

	session.SetApplicationID(result.ApplicationID)
	*session.FormState() = core.FormState{}
	return ctx.Redirect(http.StatusSeeOther, "/confirmation")
}

// Confirmation stays reachable without a principal so the page survives
// a session that was logged out right after submission.
func (c *HTTPController) Confirmation(ctx core.Context) error {
	session := core.GetSession(ctx)
	return ctx.JSON(http.StatusOK, map[string]any{
		"applicationId": session.ApplicationID(),
	})
}

func personalDetailsFromState(state *core.FormState) PersonalDetailsForm {
	return PersonalDetailsForm{
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

func businessDetailsFromState(state *core.FormState) BusinessDetailsForm {
	return BusinessDetailsForm{
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

func licenseDetailsFromState(state *core.FormState) LicenseDetailsForm {
	return LicenseDetailsForm{
		LicenseType:             state.LicenseType,
		PremisesType:            state.PremisesType,
		PremisesAddressLine1:    state.PremisesAddressLine1,
		PremisesAddressLine2:    state.PremisesAddressLine2,
		PremisesAddressTown:     state.PremisesAddressTown,
		PremisesAddressCounty:   state.PremisesAddressCounty,
		PremisesAddressPostcode: state.PremisesAddressPostcode,
		Activities:              state.Activities,
		MondayHours:             state.MondayHours,
		TuesdayHours:            state.TuesdayHours,
		WednesdayHours:          state.WednesdayHours,
		ThursdayHours:           state.ThursdayHours,
		FridayHours:             state.FridayHours,
		SaturdayHours:           state.SaturdayHours,
		SundayHours:             state.SundayHours,
	}
}
