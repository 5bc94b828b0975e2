package utils

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"
	"travelhub/src/config"
	"travelhub/src/db/dbtest"
	"travelhub/src/models"
	"travelhub/src/types"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testTokenKey = "000102030405060708090a0b0c0d0e0f000102030405060708090a0b0c0d0e0f"

func init() {
	passwordCost = bcrypt.MinCost
}

func kindOf(t *testing.T, err error) types.ErrorKind {
	t.Helper()
	require.Error(t, err)
	return types.AsAppError(err).Kind
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("p")
	require.NoError(t, err)
	assert.NotEqual(t, "p", hash)
	assert.True(t, CheckPassword(hash, "p"))
	assert.False(t, CheckPassword(hash, "q"))
	assert.False(t, CheckPassword("", "p"))

	other, err := HashPassword("p")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes are salted")
}

func TestProviderTokenSealing(t *testing.T) {
	sealed, err := SealProviderToken(testTokenKey, "ya29.token")
	require.NoError(t, err)
	assert.NotEqual(t, "ya29.token", sealed)

	opened, err := OpenProviderToken(testTokenKey, sealed)
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", opened)

	plain, err := SealProviderToken("", "ya29.token")
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", plain)

	_, err = DecryptMessage(make([]byte, 32), hex.EncodeToString([]byte("abc")))
	assert.Error(t, err)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15,
		RefreshTTL:    1,
		Issuer:        "travelhub-test",
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("jti-%d", n)
	}
}

func TestTokenIssuerWithoutRedis(t *testing.T) {
	issuer := NewTokenIssuer(testJWTConfig(), nil)
	email := "a@x.com"
	user := &models.User{ID: 7, Email: &email, Preference: types.PREFERENCE_TRAVELLER}

	pair, err := issuer.Issue(context.Background(), user)
	require.NoError(t, err)

	claims, err := issuer.ParseAccess(pair.Token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	id, err := UserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	_, err = issuer.ParseAccess(pair.Refresh)
	assert.Equal(t, types.ERR_UNAUTHORIZED, kindOf(t, err), "refresh token is not an access token")

	_, err = issuer.ConsumeRefresh(context.Background(), pair.Token)
	assert.Equal(t, types.ERR_UNAUTHORIZED, kindOf(t, err))

	_, err = issuer.ParseAccess("not-a-token")
	assert.Equal(t, types.ERR_UNAUTHORIZED, kindOf(t, err))
}

func TestTokenIssuerExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTTL = -1
	issuer := NewTokenIssuer(cfg, nil)
	pair, err := issuer.Issue(context.Background(), &models.User{ID: 1})
	require.NoError(t, err)

	_, err = issuer.ParseAccess(pair.Token)
	assert.Equal(t, types.ERR_UNAUTHORIZED, kindOf(t, err))
}

func TestRefreshTokensAreSingleUse(t *testing.T) {
	restore := newTokenID
	newTokenID = sequentialIDs()
	defer func() { newTokenID = restore }()

	rdb, mock := redismock.NewClientMock()
	cfg := testJWTConfig()
	issuer := NewTokenIssuer(cfg, rdb)
	user := &models.User{ID: 7}

	mock.ExpectSet("refresh:jti-2", user.ID, cfg.RefreshDuration()).SetVal("OK")
	pair, err := issuer.Issue(context.Background(), user)
	require.NoError(t, err)

	mock.ExpectGet("refresh:jti-2").SetVal("7")
	mock.ExpectDel("refresh:jti-2").SetVal(1)
	claims, err := issuer.ConsumeRefresh(context.Background(), pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, "jti-2", claims.ID)

	mock.ExpectGet("refresh:jti-2").RedisNil()
	_, err = issuer.ConsumeRefresh(context.Background(), pair.Refresh)
	assert.Equal(t, types.ERR_UNAUTHORIZED, kindOf(t, err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

type AccountsSuite struct {
	suite.Suite
	DB *gorm.DB
}

func (s *AccountsSuite) SetupTest() {
	s.DB = dbtest.NewSQLiteDB(&models.User{}, &models.OAuthProfile{})
}

func (s *AccountsSuite) TearDownTest() {
	if inner, err := s.DB.DB(); err == nil {
		inner.Close()
	}
}

func (s *AccountsSuite) countUsers() int64 {
	var n int64
	require.NoError(s.T(), s.DB.Model(&models.User{}).Count(&n).Error)
	return n
}

func (s *AccountsSuite) TestRegisterAndAuthenticate() {
	user, err := RegisterUser(s.DB, &types.RegisterRequestBody{Name: "A", Email: "A@x.com", Password: "p"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "a@x.com", *user.Email)
	assert.False(s.T(), user.IsVerified)
	assert.Equal(s.T(), types.PREFERENCE_TRAVELLER, user.Preference)
	assert.NotEqual(s.T(), "p", user.PasswordHash)

	_, err = RegisterUser(s.DB, &types.RegisterRequestBody{Name: "B", Email: "a@x.com", Password: "other"})
	require.Error(s.T(), err)
	appErr := types.AsAppError(err)
	assert.Equal(s.T(), types.ERR_CONFLICT, appErr.Kind)
	assert.Contains(s.T(), appErr.Message, "already exists")
	assert.Equal(s.T(), int64(1), s.countUsers())

	logged, err := AuthenticateUser(s.DB, "a@x.com", "p")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, logged.ID)
	assert.NotNil(s.T(), logged.LastLogin)

	_, err = AuthenticateUser(s.DB, "a@x.com", "wrong")
	assert.Equal(s.T(), types.ERR_UNAUTHORIZED, kindOf(s.T(), err))

	_, err = AuthenticateUser(s.DB, "nobody@x.com", "p")
	assert.Equal(s.T(), types.ERR_NOT_FOUND, kindOf(s.T(), err))
	// 30 three-byte runes fit a rune count of 72 but not bcrypt's byte limit
	_, err = RegisterUser(s.DB, &types.RegisterRequestBody{Name: "C", Email: "c@x.com", Password: strings.Repeat("€", 30)})
	appErr = types.AsAppError(err)
	assert.Equal(s.T(), 400, appErr.Status())
	assert.Contains(s.T(), appErr.Fields, "password")
	assert.Equal(s.T(), int64(1), s.countUsers())
}

func (s *AccountsSuite) TestOAuthSameIdentityResolvesToSameUser() {
	profile := types.ProviderProfile{ID: "g-1", Email: "g@x.com", Name: "G", Picture: "https://img/1"}
	first, isNew, err := ResolveOAuthUser(s.DB, config.PROVIDER_GOOGLE, profile, types.ProviderTokens{AccessToken: "t1"}, testTokenKey)
	require.NoError(s.T(), err)
	assert.True(s.T(), isNew)
	assert.True(s.T(), first.IsVerified)

	profile.Picture = "https://img/2"
	second, isNew, err := ResolveOAuthUser(s.DB, config.PROVIDER_GOOGLE, profile, types.ProviderTokens{AccessToken: "t2"}, testTokenKey)
	require.NoError(s.T(), err)
	assert.False(s.T(), isNew)
	assert.Equal(s.T(), first.ID, second.ID)
	assert.Equal(s.T(), int64(1), s.countUsers())

	var stored models.OAuthProfile
	require.NoError(s.T(), s.DB.Where("user_id = ?", first.ID).First(&stored).Error)
	assert.Equal(s.T(), "https://img/2", stored.ProfilePicture)
	assert.NotEqual(s.T(), "t2", stored.AccessToken)
	opened, err := OpenProviderToken(testTokenKey, stored.AccessToken)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "t2", opened)
}

func (s *AccountsSuite) TestOAuthAttachesToRegisteredEmail() {
	registered, err := RegisterUser(s.DB, &types.RegisterRequestBody{Name: "A", Email: "a@x.com", Password: "p"})
	require.NoError(s.T(), err)

	user, isNew, err := ResolveOAuthUser(s.DB, config.PROVIDER_FACEBOOK, types.ProviderProfile{ID: "fb-9", Email: "A@X.com"}, types.ProviderTokens{AccessToken: "t"}, "")
	require.NoError(s.T(), err)
	assert.False(s.T(), isNew)
	assert.Equal(s.T(), registered.ID, user.ID)
	assert.Equal(s.T(), int64(1), s.countUsers())

	var link models.OAuthProfile
	require.NoError(s.T(), s.DB.Where("user_id = ?", registered.ID).First(&link).Error)
	assert.Equal(s.T(), "fb-9", link.ProviderUserID)
	assert.Equal(s.T(), "t", link.AccessToken)

	_, _, err = ResolveOAuthUser(s.DB, config.PROVIDER_GITHUB, types.ProviderProfile{ID: "gh-3", Email: "a@x.com"}, types.ProviderTokens{}, "")
	assert.Equal(s.T(), types.ERR_CONFLICT, kindOf(s.T(), err))
}

func (s *AccountsSuite) TestOAuthWithoutEmail() {
	user, isNew, err := ResolveOAuthUser(s.DB, config.PROVIDER_GITHUB, types.ProviderProfile{ID: "42", Name: "octo"}, types.ProviderTokens{AccessToken: "t"}, "")
	require.NoError(s.T(), err)
	assert.True(s.T(), isNew)
	assert.Nil(s.T(), user.Email)

	_, _, err = ResolveOAuthUser(s.DB, config.PROVIDER_GITHUB, types.ProviderProfile{}, types.ProviderTokens{}, "")
	assert.Equal(s.T(), types.ERR_UPSTREAM, kindOf(s.T(), err))
}

func (s *AccountsSuite) TestFindUser() {
	registered, err := RegisterUser(s.DB, &types.RegisterRequestBody{Name: "A", Email: "a@x.com", Password: "p"})
	require.NoError(s.T(), err)
	found, err := FindUser(s.DB, registered.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "A", found.Name)

	_, err = FindUser(s.DB, registered.ID+100)
	assert.Equal(s.T(), types.ERR_NOT_FOUND, kindOf(s.T(), err))
}

func TestAccountsSuite(t *testing.T) {
	suite.Run(t, new(AccountsSuite))
}
