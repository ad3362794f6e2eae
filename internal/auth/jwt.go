// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/metro-bond/internal/config"
	"github.com/carterperez-dev/metro-bond/internal/core"
	"github.com/carterperez-dev/metro-bond/internal/middleware"
)

var ErrMissingSecret = errors.New("token secret is empty")

// TokenManager signs and verifies HS256 access tokens with the shared
// ACCESS_TOKEN_SECRET.
type TokenManager struct {
	key    jwk.Key
	expire time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import secret: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &TokenManager{
		key:    key,
		expire: cfg.Expire,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

type IdentityClaims struct {
	Email string
	Name  string
}

func (m *TokenManager) CreateAccessToken(
	claims IdentityClaims,
) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.expire)

	builder := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.issuer).
		Subject(claims.Email).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim("email", claims.Email)

	if claims.Name != "" {
		builder = builder.Claim("name", claims.Name)
	}

	token, err := builder.Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return string(signed), expiresAt, nil
}

func (m *TokenManager) VerifyAccessToken(
	_ context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.issuer),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	var email string
	if err := token.Get("email", &email); err != nil || email == "" {
		return nil, fmt.Errorf(
			"verify token: missing email claim: %w",
			core.ErrTokenInvalid,
		)
	}

	var name string
	//nolint:errcheck // name is optional
	_ = token.Get("name", &name)

	return &middleware.AccessTokenClaims{
		Email: email,
		Name:  name,
	}, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

var _ middleware.TokenVerifier = (*TokenManager)(nil)
