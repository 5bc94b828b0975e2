package types

import "time"

// ProviderProfile is the identity returned by an OAuth provider, normalized
// across providers.
type ProviderProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type ProviderTokens struct {
	AccessToken  string
	RefreshToken string
	Expiry       *time.Time
}
