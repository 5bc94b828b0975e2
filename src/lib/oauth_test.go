package lib

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"travelhub/src/config"
	"travelhub/src/types"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testConfig(server *httptest.Server) *config.Config {
	return &config.Config{
		HTTPTimeoutSeconds: 2,
		Providers: map[string]config.OAuthProvider{
			config.PROVIDER_GITHUB: {
				ClientID:     "gh-client",
				ClientSecret: "gh-secret",
				AuthURL:      server.URL + "/authorize",
				TokenURL:     server.URL + "/token",
				UserInfoURL:  server.URL + "/user",
				Headers:      map[string]string{"Accept": "application/vnd.github.v3+json"},
			},
			config.PROVIDER_FACEBOOK: {
				ClientID:    "fb-client",
				UserInfoURL: server.URL + "/me",
				Params:      map[string]string{"fields": "id,name,email,picture"},
			},
		},
	}
}

func providerServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"bad_verification_code"}`))
			return
		}
		assert.Equal(t, "gh-client", r.Form.Get("client_id"))
		assert.Equal(t, "https://app/callback", r.Form.Get("redirect_uri"))
		w.Write([]byte(`{"access_token":"gh-token","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		if r.Header.Get("Authorization") != "Bearer gh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"id":583231,"login":"octocat","name":"The Octocat","email":null,"avatar_url":"https://avatars/octo"}`))
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "id,name,email,picture", r.URL.Query().Get("fields"))
		if r.Header.Get("Authorization") == "Bearer broken" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"id":"10158","name":"Fb User","email":"fb@x.com","picture":{"data":{"url":"https://fb/pic"}}}`))
	})
	return httptest.NewServer(mux)
}

func TestOAuthExchangeAndProfile(t *testing.T) {
	server := providerServer(t)
	defer server.Close()
	client := NewOAuthClient(testConfig(server))
	assert.Equal(t, 2*time.Second, client.HTTPClient().Timeout)
	ctx := context.Background()

	tokens, err := client.Exchange(ctx, "github", "good-code", "https://app/callback")
	require.NoError(t, err)
	assert.Equal(t, "gh-token", tokens.AccessToken)
	assert.NotNil(t, tokens.Expiry)

	profile, err := client.FetchProfile(ctx, "github", tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "583231", profile.ID)
	assert.Equal(t, "", profile.Email)
	assert.Equal(t, "https://avatars/octo", profile.Picture)

	_, err = client.Exchange(ctx, "github", "bad-code", "https://app/callback")
	require.Error(t, err)
	assert.Equal(t, types.ERR_UNAUTHORIZED, types.AsAppError(err).Kind)

	_, err = client.FetchProfile(ctx, "github", "wrong")
	require.Error(t, err)
	assert.Equal(t, types.ERR_UNAUTHORIZED, types.AsAppError(err).Kind)

	_, err = client.Exchange(ctx, "myspace", "good-code", "https://app/callback")
	require.Error(t, err)
	assert.Equal(t, types.ERR_UNSUPPORTED_PROVIDER, types.AsAppError(err).Kind)
}

func TestOAuthFacebookProfile(t *testing.T) {
	server := providerServer(t)
	defer server.Close()
	client := NewOAuthClient(testConfig(server))

	profile, err := client.FetchProfile(context.Background(), "facebook", "fb-token")
	require.NoError(t, err)
	assert.Equal(t, &types.ProviderProfile{ID: "10158", Email: "fb@x.com", Name: "Fb User", Picture: "https://fb/pic"}, profile)

	_, err = client.FetchProfile(context.Background(), "facebook", "broken")
	require.Error(t, err)
	appErr := types.AsAppError(err)
	assert.Equal(t, types.ERR_UPSTREAM, appErr.Kind)
	assert.Equal(t, http.StatusBadGateway, appErr.Status())
}

func TestNormalizeProfile(t *testing.T) {
	google := NormalizeProfile(gjson.Parse(`{"id":"g-1","email":"g@x.com","name":"G","picture":"https://g/pic"}`))
	assert.Equal(t, "https://g/pic", google.Picture)

	sub := NormalizeProfile(gjson.Parse(`{"sub":"s-1"}`))
	assert.Equal(t, "s-1", sub.ID)

	unverified := NormalizeProfile(gjson.Parse(`{"id":"g-2","email":"g@x.com","verified_email":false}`))
	assert.Equal(t, "g-2", unverified.ID)
	assert.Empty(t, unverified.Email)
	assert.Equal(t, "g@x.com", NormalizeProfile(gjson.Parse(`{"id":"g-3","email":"g@x.com","verified_email":true}`)).Email)
}

func signIDToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-key"
	raw, err := token.SignedString(key)
	require.NoError(t, err)
	return raw
}

func TestGoogleVerifier(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	verifier := NewGoogleVerifierWithKeyfunc("my-client", func(tk *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	})
	ctx := context.Background()
	base := func() jwt.MapClaims {
		return jwt.MapClaims{
			"iss":            "https://accounts.google.com",
			"aud":            "my-client",
			"sub":            "1234",
			"email":          "g@x.com",
			"email_verified": true,
			"name":           "G User",
			"picture":        "https://g/pic",
			"exp":            time.Now().Add(time.Hour).Unix(),
			"iat":            time.Now().Unix(),
		}
	}

	profile, err := verifier.Verify(ctx, signIDToken(t, key, base()))
	require.NoError(t, err)
	assert.Equal(t, "1234", profile.ID)
	assert.Equal(t, "g@x.com", profile.Email)

	t.Run("unverified email is not returned", func(t *testing.T) {
		for _, flag := range []any{false, "false", nil} {
			claims := base()
			if flag == nil {
				delete(claims, "email_verified")
			} else {
				claims["email_verified"] = flag
			}
			profile, err := verifier.Verify(ctx, signIDToken(t, key, claims))
			require.NoError(t, err)
			assert.Equal(t, "1234", profile.ID)
			assert.Empty(t, profile.Email)
		}

		legacy := base()
		legacy["email_verified"] = "true"
		profile, err := verifier.Verify(ctx, signIDToken(t, key, legacy))
		require.NoError(t, err)
		assert.Equal(t, "g@x.com", profile.Email)
	})

	cases := map[string]string{}
	forged := signIDToken(t, other, base())
	cases["forged signature"] = forged

	wrongAud := base()
	wrongAud["aud"] = "someone-else"
	cases["wrong audience"] = signIDToken(t, key, wrongAud)

	wrongIss := base()
	wrongIss["iss"] = "https://evil.example.com"
	cases["wrong issuer"] = signIDToken(t, key, wrongIss)

	expired := base()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	cases["expired"] = signIDToken(t, key, expired)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, base()).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	cases["unsigned"] = unsigned

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.Verify(ctx, raw)
			require.Error(t, err)
			assert.Equal(t, types.ERR_UNAUTHORIZED, types.AsAppError(err).Kind)
		})
	}
}

func TestGoogleVerifierFromJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": "test-key",
				"alg": "RS256",
				"use": "sig",
				"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
				"e":   "AQAB",
			}},
		})
	}))
	defer server.Close()

	verifier := NewGoogleVerifier("my-client", server.URL, server.Client())
	raw := signIDToken(t, key, jwt.MapClaims{
		"iss": "accounts.google.com",
		"aud": "my-client",
		"sub": "99",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	profile, err := verifier.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "99", profile.ID)
}
