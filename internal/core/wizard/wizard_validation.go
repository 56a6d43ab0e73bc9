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
	"regexp"
	"strings"
	"time"

	"github.com/open-gov-forms/license-apply/internal/core"
)

var (
	nameRe          = regexp.MustCompile(`^[A-Za-z\s\-'.]+$`)
	postcodeRe      = regexp.MustCompile(`(?i)^[A-Z]{1,2}[0-9R][0-9A-Z]? [0-9][A-Z]{2}$`)
	phoneRe         = regexp.MustCompile(`^(\+44|0)[1-9]\d{8,9}$`)
	companyNumberRe = regexp.MustCompile(`^\d{8}$`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

var businessTypes = map[string]struct{}{
	"pub":         {},
	"restaurant":  {},
	"bar":         {},
	"nightclub":   {},
	"hotel":       {},
	"off-licence": {},
	"supermarket": {},
	"shop":        {},
	"other":       {},
}

var licenseTypes = map[string]struct{}{
	"premises": {},
	"club":     {},
	"personal": {},
}

var activities = map[string]struct{}{
	"sale-on":                 {},
	"sale-off":                {},
	"regulated-entertainment": {},
	"late-night-refreshment":  {},
	"live-music":              {},
	"recorded-music":          {},
}

func validBusinessType(t string) bool {
	_, ok := businessTypes[t]
	return ok
}

func validLicenseType(t string) bool {
	_, ok := licenseTypes[t]
	return ok
}

func validActivity(a string) bool {
	_, ok := activities[a]
	return ok
}

func validEmail(email string) bool {
	return core.V.Var(strings.TrimSpace(email), "required,email") == nil
}

func validUKPhone(phone string) bool {
	return phoneRe.MatchString(whitespaceRe.ReplaceAllString(phone, ""))
}

func validUKPostcode(postcode string) bool {
	normalized := whitespaceRe.ReplaceAllString(strings.TrimSpace(postcode), " ")
	return postcodeRe.MatchString(normalized)
}

// validDateOfBirth requires a real calendar date at least 18 years in
// the past. time.Date normalizes overflow, so a fabricated date like
// 31 February rolls over and no longer matches its inputs.
func validDateOfBirth(day, month, year int, now time.Time) bool {
	birth := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if birth.Day() != day || birth.Month() != time.Month(month) || birth.Year() != year {
		return false
	}
	return !birth.AddDate(minimumAge, 0, 0).After(now)
}
