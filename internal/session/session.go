// Package session owns who is using the storefront: the bearer token, the
// profile and the user type, persisted under one namespace per visitor.
package session

import "strings"

type UserType string

const (
	Buyer  UserType = "buyer"
	Seller UserType = "seller"
)

// ParseUserType is case-insensitive and returns "" for anything else.
func ParseUserType(s string) UserType {
	switch UserType(strings.ToLower(strings.TrimSpace(s))) {
	case Buyer:
		return Buyer
	case Seller:
		return Seller
	}
	return ""
}

// LoginPath is the login surface an unauthorised visitor is sent to.
func (u UserType) LoginPath() string {
	switch u {
	case Buyer:
		return "/login/buyer"
	case Seller:
		return "/login/seller"
	}
	return "/login"
}

// Profile is the stored user record. Farm fields are only set for sellers.
type Profile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	FarmName     string `json:"farmName,omitempty"`
	FarmLocation string `json:"farmLocation,omitempty"`
	UserType     string `json:"userType,omitempty"`
}

// Session is the in-memory record. Token and Profile are either both set or
// both empty.
type Session struct {
	Token    string   `json:"-"`
	Profile  *Profile `json:"user,omitempty"`
	UserType UserType `json:"userType,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.Profile != nil
}
