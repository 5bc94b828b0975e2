package lib

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"
	"travelhub/src/types"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

var googleIssuers = []string{"accounts.google.com", "https://accounts.google.com"}

// GoogleVerifier validates Google ID tokens against Google's published keys.
type GoogleVerifier struct {
	clientID string
	certsURL string
	client   *http.Client

	mu      sync.Mutex
	keyfunc jwt.Keyfunc
}

func NewGoogleVerifier(clientID string, certsURL string, client *http.Client) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, certsURL: certsURL, client: client}
}

// NewGoogleVerifierWithKeyfunc skips the JWKS download and uses kf for key lookup.
func NewGoogleVerifierWithKeyfunc(clientID string, kf jwt.Keyfunc) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, keyfunc: kf}
}

func (g *GoogleVerifier) keys() (jwt.Keyfunc, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.keyfunc != nil {
		return g.keyfunc, nil
	}
	jwks, err := keyfunc.Get(g.certsURL, keyfunc.Options{
		Client:            g.client,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Printf("[google] Error refreshing signing keys: %s\n", err.Error())
		},
	})
	if err != nil {
		return nil, err
	}
	g.keyfunc = jwks.Keyfunc
	return g.keyfunc, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, raw string) (*types.ProviderProfile, error) {
	if g.clientID == "" {
		return nil, types.NewUnsupportedProviderError("google")
	}
	kf, err := g.keys()
	if err != nil {
		return nil, types.NewUpstreamError("could not load google signing keys", err)
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, kf, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil || !token.Valid {
		return nil, types.NewUnauthorizedError("invalid credential", err)
	}
	if !claims.VerifyAudience(g.clientID, true) {
		return nil, types.NewUnauthorizedError("invalid credential", errors.New("audience mismatch"))
	}
	issuerOk := false
	for _, iss := range googleIssuers {
		if claims.VerifyIssuer(iss, true) {
			issuerOk = true
			break
		}
	}
	if !issuerOk {
		return nil, types.NewUnauthorizedError("invalid credential", errors.New("unexpected issuer"))
	}
	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}
	profile := &types.ProviderProfile{
		ID:      str("sub"),
		Email:   str("email"),
		Name:    str("name"),
		Picture: str("picture"),
	}
	if profile.ID == "" {
		return nil, types.NewUnauthorizedError("invalid credential", errors.New("missing subject"))
	}
	// an unverified address must not be linked to an existing account
	if !emailVerified(claims["email_verified"]) {
		profile.Email = ""
	}
	return profile, nil
}

// emailVerified accepts the claim as a bool or, on older tokens, a string.
func emailVerified(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	}
	return false
}
