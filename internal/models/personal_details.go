package models

import "strings"

// PersonalDetails is the profile record for one account.
type PersonalDetails struct {
	AccountID   int64  `db:"account_id" json:"accountID"`
	Login       string `db:"login" json:"login,omitempty"`
	DisplayName string `db:"display_name" json:"displayName,omitempty"`
	FirstName   string `db:"first_name" json:"firstName,omitempty"`
	LastName    string `db:"last_name" json:"lastName,omitempty"`
	Avatar      string `db:"avatar" json:"avatar,omitempty"`
}

// FullName is the best long-form name available for the account.
func (d *PersonalDetails) FullName() string {
	if d == nil {
		return ""
	}
	if d.DisplayName != "" {
		return d.DisplayName
	}
	if name := strings.TrimSpace(d.FirstName + " " + d.LastName); name != "" {
		return name
	}
	return d.Login
}

// ShortName is the best short-form name, preferring the first name.
func (d *PersonalDetails) ShortName() string {
	if d == nil {
		return ""
	}
	if d.FirstName != "" {
		return d.FirstName
	}
	return d.FullName()
}
