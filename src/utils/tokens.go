package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"
	"travelhub/src/config"
	"travelhub/src/lib"
	"travelhub/src/models"
	"travelhub/src/types"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var newTokenID = uuid.NewString

var ErrTokenRevoked = errors.New("refresh token was revoked or already used")

func refreshKey(jti string) string {
	return fmt.Sprintf("refresh:%s", jti)
}

// TokenIssuer signs access/refresh pairs. When a redis client is present,
// refresh tokens are single use and tracked by their jti.
type TokenIssuer struct {
	cfg config.JWTConfig
	rdb *redis.Client
}

func NewTokenIssuer(cfg config.JWTConfig, rdb *redis.Client) *TokenIssuer {
	return &TokenIssuer{cfg: cfg, rdb: rdb}
}

var tokenIssuer *TokenIssuer

// GetTokenIssuer builds the process-wide issuer from config.Get() on first use.
func GetTokenIssuer() *TokenIssuer {
	if tokenIssuer != nil {
		return tokenIssuer
	}
	tokenIssuer = NewTokenIssuer(config.Get().JWT, lib.GetRedisClient())
	return tokenIssuer
}

// SetTokenIssuer replaces the process-wide issuer.
func SetTokenIssuer(t *TokenIssuer) *TokenIssuer {
	tokenIssuer = t
	return tokenIssuer
}

func (t *TokenIssuer) sign(user *models.User, kind types.TokenType, jti string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	claims := &types.Claims{
		Email:      email,
		Preference: user.Preference,
		TokenType:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    t.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (t *TokenIssuer) Issue(ctx context.Context, user *models.User) (*types.APIResponseTokens, error) {
	access, err := t.sign(user, types.ACCESS_TOKEN, newTokenID(), t.cfg.AccessDuration(), t.cfg.Secret)
	if err != nil {
		return nil, err
	}
	jti := newTokenID()
	refresh, err := t.sign(user, types.REFRESH_TOKEN, jti, t.cfg.RefreshDuration(), t.cfg.RefreshSecret)
	if err != nil {
		return nil, err
	}
	if t.rdb != nil {
		if err := t.rdb.Set(ctx, refreshKey(jti), user.ID, t.cfg.RefreshDuration()).Err(); err != nil {
			log.Printf("[tokens] Error storing refresh token: %s\n", err.Error())
			return nil, err
		}
	}
	return &types.APIResponseTokens{Token: access, Refresh: refresh}, nil
}

func (t *TokenIssuer) parse(raw string, kind types.TokenType, secret string) (*types.Claims, error) {
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tk.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, types.NewUnauthorizedError("invalid or expired token", err)
	}
	if !tkn.Valid || claims.TokenType != kind {
		return nil, types.NewUnauthorizedError("invalid or expired token", nil)
	}
	return claims, nil
}

func (t *TokenIssuer) ParseAccess(raw string) (*types.Claims, error) {
	return t.parse(raw, types.ACCESS_TOKEN, t.cfg.Secret)
}

// ConsumeRefresh validates a refresh token and marks it used.
func (t *TokenIssuer) ConsumeRefresh(ctx context.Context, raw string) (*types.Claims, error) {
	claims, err := t.parse(raw, types.REFRESH_TOKEN, t.cfg.RefreshSecret)
	if err != nil {
		return nil, err
	}
	if t.rdb == nil {
		return claims, nil
	}
	key := refreshKey(claims.ID)
	owner, err := t.rdb.Get(ctx, key).Result()
	if err == redis.Nil || (err == nil && owner != claims.Subject) {
		return nil, types.NewUnauthorizedError("invalid or expired token", ErrTokenRevoked)
	}
	if err != nil {
		return nil, err
	}
	if err := t.rdb.Del(ctx, key).Err(); err != nil {
		return nil, err
	}
	return claims, nil
}

// UserIDFromClaims reads the numeric subject.
func UserIDFromClaims(claims *types.Claims) (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, types.NewUnauthorizedError("invalid or expired token", err)
	}
	return uint(id), nil
}
