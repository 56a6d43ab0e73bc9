package models

import (
	"encoding/json"
	"time"
)

type ApplicationStatus string

const (
	StatusSubmitted   ApplicationStatus = "submitted"
	StatusUnderReview ApplicationStatus = "under-review"
	StatusApproved    ApplicationStatus = "approved"
	StatusRejected    ApplicationStatus = "rejected"
)

// ApplicationStatuses lists the full status domain. submitted is the initial
// value, approved and rejected are terminal.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected}
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// StringList accepts either a single scalar or an array in JSON payloads and
// always normalizes to a list, so "sale-on" and ["sale-on"] are equivalent.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = StringList(many)
	return nil
}

type OperatingHours struct {
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
}

type PersonalDetails struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	DobDay          string `json:"dobDay"`
	DobMonth        string `json:"dobMonth"`
	DobYear         string `json:"dobYear"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	AddressLine1    string `json:"addressLine1"`
	AddressLine2    string `json:"addressLine2"`
	AddressTown     string `json:"addressTown"`
	AddressCounty   string `json:"addressCounty"`
	AddressPostcode string `json:"addressPostcode"`
}

type BusinessDetails struct {
	BusinessName            string `json:"businessName"`
	CompanyNumber           string `json:"companyNumber"`
	BusinessType            string `json:"businessType"`
	BusinessAddressLine1    string `json:"businessAddressLine1"`
	BusinessAddressLine2    string `json:"businessAddressLine2"`
	BusinessAddressTown     string `json:"businessAddressTown"`
	BusinessAddressCounty   string `json:"businessAddressCounty"`
	BusinessAddressPostcode string `json:"businessAddressPostcode"`
	BusinessPhone           string `json:"businessPhone"`
	BusinessEmail           string `json:"businessEmail"`
}

type LicenseDetails struct {
	LicenseType             string         `json:"licenseType"`
	PremisesType            string         `json:"premisesType"`
	PremisesAddressLine1    string         `json:"premisesAddressLine1"`
	PremisesAddressLine2    string         `json:"premisesAddressLine2"`
	PremisesAddressTown     string         `json:"premisesAddressTown"`
	PremisesAddressCounty   string         `json:"premisesAddressCounty"`
	PremisesAddressPostcode string         `json:"premisesAddressPostcode"`
	Activities              StringList     `json:"activities"`
	OperatingHours          OperatingHours `json:"operatingHours"`
}

// Application is the central entity. The three detail sub-records are typed
// structs; gorm's json serializer turns them into jsonb columns, so nothing
// above the storage adapter ever sees serialized text.
type Application struct {
	Model
	ApplicationID   string            `json:"applicationId" gorm:"type:text;unique;not null;index"`
	PersonalDetails PersonalDetails   `json:"personalDetails" gorm:"serializer:json;type:jsonb;not null"`
	BusinessDetails BusinessDetails   `json:"businessDetails" gorm:"serializer:json;type:jsonb;not null"`
	LicenseDetails  LicenseDetails    `json:"licenseDetails" gorm:"serializer:json;type:jsonb;not null"`
	Declaration     string            `json:"declaration" gorm:"type:text"`
	Status          ApplicationStatus `json:"status" gorm:"type:text;not null;default:'submitted';check:status IN ('submitted','under-review','approved','rejected')"`
	SubmittedAt     time.Time         `json:"submittedAt" gorm:"not null"`
}

func (a Application) TableName() string {
	return "applications"
}
