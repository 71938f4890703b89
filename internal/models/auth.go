package models

import "github.com/golang-jwt/jwt/v5"

// AuthClaims is the JWT payload identifying the acting account.
type AuthClaims struct {
	AccountID int64  `json:"accountID"`
	Login     string `json:"login"`
	jwt.RegisteredClaims
}
