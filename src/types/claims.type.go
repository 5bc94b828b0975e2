package types

import "github.com/golang-jwt/jwt/v4"

type TokenType string

const (
	ACCESS_TOKEN  TokenType = "access"
	REFRESH_TOKEN TokenType = "refresh"
)

type Claims struct {
	Email      string         `json:"email,omitempty"`
	Preference UserPreference `json:"preference,omitempty"`
	TokenType  TokenType      `json:"token_type"`
	jwt.RegisteredClaims
}
