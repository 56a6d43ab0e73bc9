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
	"strconv"
	"strings"
	"time"

	"github.com/open-gov-forms/license-apply/internal/apperror"
	"github.com/open-gov-forms/license-apply/internal/core"
)

// Step names, in their fixed order.
const (
	StepPersonalDetails = "personal-details"
	StepBusinessDetails = "business-details"
	StepLicenseDetails  = "license-details"
	StepSummary         = "summary"
)

const minimumAge = 18

type PersonalDetailsForm struct {
	FirstName       string `form:"firstName"`
	LastName        string `form:"lastName"`
	DobDay          string `form:"dobDay"`
	DobMonth        string `form:"dobMonth"`
	DobYear         string `form:"dobYear"`
	Email           string `form:"email"`
	PhoneNumber     string `form:"phoneNumber"`
	AddressLine1    string `form:"addressLine1"`
	AddressLine2    string `form:"addressLine2"`
	AddressTown     string `form:"addressTown"`
	AddressCounty   string `form:"addressCounty"`
	AddressPostcode string `form:"addressPostcode"`
}

func (f PersonalDetailsForm) Validate(now time.Time) []apperror.FieldError {
	var errs []apperror.FieldError

	errs = append(errs, validateName("firstName", "First name", f.FirstName)...)
	errs = append(errs, validateName("lastName", "Last name", f.LastName)...)
	errs = append(errs, validateDateOfBirth(f.DobDay, f.DobMonth, f.DobYear, now)...)

	if strings.TrimSpace(f.Email) == "" {
		errs = append(errs, fieldError("email", "Email address is required", f.Email))
	} else if !validEmail(f.Email) {
		errs = append(errs, fieldError("email", "Enter a valid email address", f.Email))
	}

	if strings.TrimSpace(f.PhoneNumber) == "" {
		errs = append(errs, fieldError("phoneNumber", "Phone number is required", f.PhoneNumber))
	} else if !validUKPhone(f.PhoneNumber) {
		errs = append(errs, fieldError("phoneNumber", "Enter a valid UK phone number", f.PhoneNumber))
	}

	errs = append(errs, validateAddress(addressFields{
		line1Path: "addressLine1", line1Label: "Address line 1", line1: f.AddressLine1,
		line2Path: "addressLine2", line2Label: "Address line 2", line2: f.AddressLine2,
		townPath: "addressTown", townLabel: "Town or city", town: f.AddressTown,
		countyPath: "addressCounty", countyLabel: "County", county: f.AddressCounty,
		postcodePath: "addressPostcode", postcodeLabel: "Postcode", postcode: f.AddressPostcode,
	})...)

	return errs
}

func (f PersonalDetailsForm) Apply(state *core.FormState) {
	state.FirstName = strings.TrimSpace(f.FirstName)
	state.LastName = strings.TrimSpace(f.LastName)
	state.DobDay = strings.TrimSpace(f.DobDay)
	state.DobMonth = strings.TrimSpace(f.DobMonth)
	state.DobYear = strings.TrimSpace(f.DobYear)
	state.Email = strings.TrimSpace(f.Email)
	state.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	state.AddressLine1 = strings.TrimSpace(f.AddressLine1)
	state.AddressLine2 = strings.TrimSpace(f.AddressLine2)
	state.AddressTown = strings.TrimSpace(f.AddressTown)
	state.AddressCounty = strings.TrimSpace(f.AddressCounty)
	state.AddressPostcode = strings.TrimSpace(f.AddressPostcode)
}

type BusinessDetailsForm struct {
	BusinessName            string `form:"businessName"`
	CompanyNumber           string `form:"companyNumber"`
	BusinessType            string `form:"businessType"`
	BusinessAddressLine1    string `form:"businessAddressLine1"`
	BusinessAddressLine2    string `form:"businessAddressLine2"`
	BusinessAddressTown     string `form:"businessAddressTown"`
	BusinessAddressCounty   string `form:"businessAddressCounty"`
	BusinessAddressPostcode string `form:"businessAddressPostcode"`
	BusinessPhone           string `form:"businessPhone"`
	BusinessEmail           string `form:"businessEmail"`
}

func (f BusinessDetailsForm) Validate(now time.Time) []apperror.FieldError {
	var errs []apperror.FieldError

	name := strings.TrimSpace(f.BusinessName)
	if name == "" {
		errs = append(errs, fieldError("businessName", "Business name is required", f.BusinessName))
	} else if len(name) < 2 || len(name) > 100 {
		errs = append(errs, fieldError("businessName", "Business name must be between 2 and 100 characters", f.BusinessName))
	}

	if number := strings.TrimSpace(f.CompanyNumber); number != "" && !companyNumberRe.MatchString(number) {
		errs = append(errs, fieldError("companyNumber", "Company registration number must be 8 digits", f.CompanyNumber))
	}

	if f.BusinessType == "" {
		errs = append(errs, fieldError("businessType", "Business type is required", f.BusinessType))
	} else if !validBusinessType(f.BusinessType) {
		errs = append(errs, fieldError("businessType", "Select a valid business type", f.BusinessType))
	}

	errs = append(errs, validateAddress(addressFields{
		line1Path: "businessAddressLine1", line1Label: "Business address line 1", line1: f.BusinessAddressLine1,
		line2Path: "businessAddressLine2", line2Label: "Business address line 2", line2: f.BusinessAddressLine2,
		townPath: "businessAddressTown", townLabel: "Business town or city", town: f.BusinessAddressTown,
		countyPath: "businessAddressCounty", countyLabel: "Business county", county: f.BusinessAddressCounty,
		postcodePath: "businessAddressPostcode", postcodeLabel: "Business postcode", postcode: f.BusinessAddressPostcode,
	})...)

	if strings.TrimSpace(f.BusinessPhone) == "" {
		errs = append(errs, fieldError("businessPhone", "Business phone number is required", f.BusinessPhone))
	} else if !validUKPhone(f.BusinessPhone) {
		errs = append(errs, fieldError("businessPhone", "Enter a valid UK business phone number", f.BusinessPhone))
	}

	if email := strings.TrimSpace(f.BusinessEmail); email != "" && !validEmail(email) {
		errs = append(errs, fieldError("businessEmail", "Enter a valid business email address", f.BusinessEmail))
	}

	return errs
}

func (f BusinessDetailsForm) Apply(state *core.FormState) {
	state.BusinessName = strings.TrimSpace(f.BusinessName)
	state.CompanyNumber = strings.TrimSpace(f.CompanyNumber)
	state.BusinessType = f.BusinessType
	state.BusinessAddressLine1 = strings.TrimSpace(f.BusinessAddressLine1)
	state.BusinessAddressLine2 = strings.TrimSpace(f.BusinessAddressLine2)
	state.BusinessAddressTown = strings.TrimSpace(f.BusinessAddressTown)
	state.BusinessAddressCounty = strings.TrimSpace(f.BusinessAddressCounty)
	state.BusinessAddressPostcode = strings.TrimSpace(f.BusinessAddressPostcode)
	state.BusinessPhone = strings.TrimSpace(f.BusinessPhone)
	state.BusinessEmail = strings.TrimSpace(f.BusinessEmail)
}

type LicenseDetailsForm struct {
	LicenseType             string   `form:"licenseType"`
	PremisesType            string   `form:"premisesType"`
	PremisesAddressLine1    string   `form:"premisesAddressLine1"`
	PremisesAddressLine2    string   `form:"premisesAddressLine2"`
	PremisesAddressTown     string   `form:"premisesAddressTown"`
	PremisesAddressCounty   string   `form:"premisesAddressCounty"`
	PremisesAddressPostcode string   `form:"premisesAddressPostcode"`
	Activities              []string `form:"activities"`
	MondayHours             string   `form:"mondayHours"`
	TuesdayHours            string   `form:"tuesdayHours"`
	WednesdayHours          string   `form:"wednesdayHours"`
	ThursdayHours           string   `form:"thursdayHours"`
	FridayHours             string   `form:"fridayHours"`
	SaturdayHours           string   `form:"saturdayHours"`
	SundayHours             string   `form:"sundayHours"`
	// operating hours fields are accepted unvalidated
}

func (f LicenseDetailsForm) Validate(now time.Time) []apperror.FieldError {
	var errs []apperror.FieldError

	if f.LicenseType == "" {
		errs = append(errs, fieldError("licenseType", "License type is required", f.LicenseType))
	} else if !validLicenseType(f.LicenseType) {
		errs = append(errs, fieldError("licenseType", "Select a valid license type", f.LicenseType))
	}

	if f.PremisesType == "" {
		errs = append(errs, fieldError("premisesType", "Premises type is required", f.PremisesType))
	} else if !validBusinessType(f.PremisesType) {
		errs = append(errs, fieldError("premisesType", "Select a valid premises type", f.PremisesType))
	}

	errs = append(errs, validateAddress(addressFields{
		line1Path: "premisesAddressLine1", line1Label: "Premises address line 1", line1: f.PremisesAddressLine1,
		line2Path: "premisesAddressLine2", line2Label: "Premises address line 2", line2: f.PremisesAddressLine2,
		townPath: "premisesAddressTown", townLabel: "Premises town or city", town: f.PremisesAddressTown,
		countyPath: "premisesAddressCounty", countyLabel: "Premises county", county: f.PremisesAddressCounty,
		postcodePath: "premisesAddressPostcode", postcodeLabel: "Premises postcode", postcode: f.PremisesAddressPostcode,
	})...)

	if len(f.Activities) == 0 {
		errs = append(errs, fieldError("activities", "Select at least one activity", ""))
	} else {
		for _, activity := range f.Activities {
			if !validActivity(activity) {
				errs = append(errs, fieldError("activities", "Invalid activity selected", activity))
				break
			}
		}
	}

	return errs
}

func (f LicenseDetailsForm) Apply(state *core.FormState) {
	state.LicenseType = f.LicenseType
	state.PremisesType = f.PremisesType
	state.PremisesAddressLine1 = strings.TrimSpace(f.PremisesAddressLine1)
	state.PremisesAddressLine2 = strings.TrimSpace(f.PremisesAddressLine2)
	state.PremisesAddressTown = strings.TrimSpace(f.PremisesAddressTown)
	state.PremisesAddressCounty = strings.TrimSpace(f.PremisesAddressCounty)
	state.PremisesAddressPostcode = strings.TrimSpace(f.PremisesAddressPostcode)
	state.Activities = normalizeActivities(f.Activities)
	state.MondayHours = f.MondayHours
	state.TuesdayHours = f.TuesdayHours
	state.WednesdayHours = f.WednesdayHours
	state.ThursdayHours = f.ThursdayHours
	state.FridayHours = f.FridayHours
	state.SaturdayHours = f.SaturdayHours
	state.SundayHours = f.SundayHours
}

type DeclarationForm struct {
	Declaration string `form:"declaration"`
}

func (f DeclarationForm) Validate(now time.Time) []apperror.FieldError {
	if f.Declaration == "" {
		return []apperror.FieldError{fieldError("declaration", "You must confirm that the information you have provided is correct", f.Declaration)}
	}
	if f.Declaration != "yes" {
		return []apperror.FieldError{fieldError("declaration", "You must confirm the declaration to continue", f.Declaration)}
	}
	return nil
}

// normalizeActivities always yields a list, also when the form carried a
// single scalar value.
func normalizeActivities(activities []string) []string {
	if activities == nil {
		return []string{}
	}
	return activities
}

func fieldError(path, message, value string) apperror.FieldError {
	return apperror.FieldError{Path: path, Message: message, Value: value}
}

type addressFields struct {
	line1Path, line1Label, line1          string
	line2Path, line2Label, line2          string
	townPath, townLabel, town             string
	countyPath, countyLabel, county       string
	postcodePath, postcodeLabel, postcode string
}

func validateAddress(a addressFields) []apperror.FieldError {
	var errs []apperror.FieldError

	line1 := strings.TrimSpace(a.line1)
	if line1 == "" {
		errs = append(errs, fieldError(a.line1Path, a.line1Label+" is required", a.line1))
	} else if len(line1) > 100 {
		errs = append(errs, fieldError(a.line1Path, a.line1Label+" must be between 1 and 100 characters", a.line1))
	}

	if line2 := strings.TrimSpace(a.line2); len(line2) > 100 {
		errs = append(errs, fieldError(a.line2Path, a.line2Label+" must not exceed 100 characters", a.line2))
	}

	town := strings.TrimSpace(a.town)
	if town == "" {
		errs = append(errs, fieldError(a.townPath, a.townLabel+" is required", a.town))
	} else if len(town) > 50 {
		errs = append(errs, fieldError(a.townPath, a.townLabel+" must be between 1 and 50 characters", a.town))
	}

	if county := strings.TrimSpace(a.county); len(county) > 50 {
		errs = append(errs, fieldError(a.countyPath, a.countyLabel+" must not exceed 50 characters", a.county))
	}

	postcode := strings.TrimSpace(a.postcode)
	if postcode == "" {
		errs = append(errs, fieldError(a.postcodePath, a.postcodeLabel+" is required", a.postcode))
	} else if !validUKPostcode(postcode) {
		errs = append(errs, fieldError(a.postcodePath, "Enter a valid UK postcode", a.postcode))
	}

	return errs
}

func validateName(path, label, value string) []apperror.FieldError {
	name := strings.TrimSpace(value)
	if name == "" {
		return []apperror.FieldError{fieldError(path, label+" is required", value)}
	}
	if len(name) > 50 {
		return []apperror.FieldError{fieldError(path, label+" must be between 1 and 50 characters", value)}
	}
	if !nameRe.MatchString(name) {
		return []apperror.FieldError{fieldError(path, label+" contains invalid characters", value)}
	}
	return nil
}

func validateDateOfBirth(dayStr, monthStr, yearStr string, now time.Time) []apperror.FieldError {
	day, dayErr := strconv.Atoi(strings.TrimSpace(dayStr))
	if dayErr != nil || day < 1 || day > 31 {
		return []apperror.FieldError{fieldError("dobDay", "Enter a valid day", dayStr)}
	}
	month, monthErr := strconv.Atoi(strings.TrimSpace(monthStr))
	if monthErr != nil || month < 1 || month > 12 {
		return []apperror.FieldError{fieldError("dobMonth", "Enter a valid month", monthStr)}
	}
	year, yearErr := strconv.Atoi(strings.TrimSpace(yearStr))
	if yearErr != nil || year < 1900 || year > now.Year()-minimumAge {
		return []apperror.FieldError{fieldError("dobYear", "Enter a valid year", yearStr)}
	}

	if !validDateOfBirth(day, month, year, now) {
		return []apperror.FieldError{fieldError("dobDay", "You must be at least 18 years old and provide a valid date of birth", dayStr)}
	}
	return nil
}
