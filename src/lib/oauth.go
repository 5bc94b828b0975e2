package lib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"travelhub/src/config"
	"travelhub/src/types"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

// IDTokenVerifier checks a provider-issued ID token and returns its identity.
type IDTokenVerifier interface {
	Verify(ctx context.Context, raw string) (*types.ProviderProfile, error)
}

// OAuthClient talks to the configured identity providers. Every outbound
// call goes through httpClient so the configured timeout always applies.
type OAuthClient struct {
	cfg        *config.Config
	httpClient *http.Client
	google     IDTokenVerifier
}

func NewOAuthClient(cfg *config.Config) *OAuthClient {
	client := &http.Client{Timeout: cfg.HTTPTimeout()}
	c := &OAuthClient{cfg: cfg, httpClient: client}
	if p, ok := cfg.Provider(config.PROVIDER_GOOGLE); ok {
		c.google = NewGoogleVerifier(p.ClientID, cfg.GoogleCertsURL, client)
	}
	return c
}

var oauthClient *OAuthClient

func GetOAuthClient() *OAuthClient {
	if oauthClient != nil {
		return oauthClient
	}
	oauthClient = NewOAuthClient(config.Get())
	return oauthClient
}

// SetOAuthClient replaces the process-wide client.
func SetOAuthClient(c *OAuthClient) *OAuthClient {
	oauthClient = c
	return oauthClient
}

// WithGoogleVerifier replaces the ID token verifier.
func (c *OAuthClient) WithGoogleVerifier(v IDTokenVerifier) *OAuthClient {
	c.google = v
	return c
}

func (c *OAuthClient) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *OAuthClient) provider(name string) (config.OAuthProvider, error) {
	p, ok := c.cfg.Provider(name)
	if !ok {
		return config.OAuthProvider{}, types.NewUnsupportedProviderError(name)
	}
	return p, nil
}

func (c *OAuthClient) VerifyGoogleCredential(ctx context.Context, credential string) (*types.ProviderProfile, error) {
	if c.google == nil {
		return nil, types.NewUnsupportedProviderError(config.PROVIDER_GOOGLE)
	}
	return c.google.Verify(ctx, credential)
}

// Exchange trades an authorization code for provider tokens.
func (c *OAuthClient) Exchange(ctx context.Context, provider string, code string, redirectURI string) (*types.ProviderTokens, error) {
	p, err := c.provider(provider)
	if err != nil {
		return nil, err
	}
	conf := &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		RedirectURL:  redirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:   p.AuthURL,
			TokenURL:  p.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil && retrieveErr.Response.StatusCode < http.StatusInternalServerError {
			return nil, types.NewUnauthorizedError("authorization code was rejected by the provider", err)
		}
		return nil, types.NewUpstreamError("token exchange failed", err)
	}
	if tok.AccessToken == "" {
		return nil, types.NewUpstreamError("token exchange failed", fmt.Errorf("%s returned no access token", provider))
	}
	out := &types.ProviderTokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry
		out.Expiry = &expiry
	}
	return out, nil
}

// FetchProfile loads and normalizes the provider's view of the user.
func (c *OAuthClient) FetchProfile(ctx context.Context, provider string, accessToken string) (*types.ProviderProfile, error) {
	p, err := c.provider(provider)
	if err != nil {
		return nil, err
	}
	endpoint, err := url.Parse(p.UserInfoURL)
	if err != nil {
		return nil, types.NewInternalError(err)
	}
	if len(p.Params) > 0 {
		q := endpoint.Query()
		for k, v := range p.Params {
			q.Set(k, v)
		}
		endpoint.RawQuery = q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, types.NewInternalError(err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, types.NewUpstreamError("could not reach identity provider", err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, types.NewUpstreamError("could not read identity provider response", err)
	}
	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusBadRequest || res.StatusCode == http.StatusForbidden:
		log.Printf("[oauth] %s rejected access token: %d\n", provider, res.StatusCode)
		return nil, types.NewUnauthorizedError("invalid or expired access token", nil)
	case res.StatusCode < 200 || res.StatusCode > 299:
		return nil, types.NewUpstreamError("identity provider error", fmt.Errorf("%s userinfo returned %d", provider, res.StatusCode))
	}
	if !gjson.ValidBytes(body) {
		return nil, types.NewUpstreamError("identity provider error", fmt.Errorf("%s userinfo returned invalid json", provider))
	}
	profile := NormalizeProfile(gjson.ParseBytes(body))
	if profile.ID == "" {
		return nil, types.NewUpstreamError("provider returned no user id", nil)
	}
	return profile, nil
}

// NormalizeProfile maps provider userinfo payloads onto one shape.
func NormalizeProfile(data gjson.Result) *types.ProviderProfile {
	id := data.Get("id")
	if !id.Exists() {
		id = data.Get("sub")
	}
	picture := data.Get("picture")
	if picture.IsObject() {
		picture = picture.Get("data.url")
	}
	if picture.String() == "" {
		picture = data.Get("avatar_url")
	}
	email := data.Get("email").String()
	for _, key := range []string{"verified_email", "email_verified"} {
		if flag := data.Get(key); flag.Exists() && !flag.Bool() {
			email = ""
		}
	}
	return &types.ProviderProfile{
		ID:      strings.TrimSpace(id.String()),
		Email:   email,
		Name:    data.Get("name").String(),
		Picture: picture.String(),
	}
}
