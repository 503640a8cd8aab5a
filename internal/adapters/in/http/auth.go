package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"bikerental/internal/core/ports"
	"bikerental/internal/pkg/errs"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ReturnToParam is the login URL parameter naming the page to come back to.
const ReturnToParam = "returnTo"

// Claims is the JWT payload issued by the identity provider.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	gojwt.RegisteredClaims
}

type principalKey struct{}

// JWTAuth implements ports.Auth on HS256 bearer tokens. Requests without a
// valid token pass through as anonymous.
type JWTAuth struct {
	secret   []byte
	loginURL *url.URL
	logger   *slog.Logger
}

func NewJWTAuth(secret string, loginURL string, logger *slog.Logger) (*JWTAuth, error) {
	var errList []error
	if secret == "" {
		errList = append(errList, errs.NewValueIsRequiredError("jwt secret"))
	}
	parsed, err := url.Parse(strings.TrimSpace(loginURL))
	if err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("login url", err))
	} else if parsed.String() == "" {
		errList = append(errList, errs.NewValueIsRequiredError("login url"))
	}
	if err = errors.Join(errList...); err != nil {
		return nil, err
	}

	return &JWTAuth{
		secret:   []byte(secret),
		loginURL: parsed,
		logger:   logger.With("component", "jwt_auth"),
	}, nil
}

// Middleware stores the caller's principal in the request context.
func (a *JWTAuth) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				return next(c)
			}

			claims, err := a.Validate(raw)
			if err != nil {
				a.logger.InfoContext(c.Request().Context(), "Ignoring invalid bearer token", "error", err)
				return next(c)
			}

			principal := ports.Principal{UserID: claims.userID(), Email: claims.Email, Token: raw}
			ctx := context.WithValue(c.Request().Context(), principalKey{}, principal)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// Principal returns the caller stored by Middleware.
func (a *JWTAuth) Principal(ctx context.Context) (ports.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(ports.Principal)
	return p, ok
}

// LoginURL appends returnTo to the configured login page.
func (a *JWTAuth) LoginURL(returnTo string) string {
	u := *a.loginURL
	q := u.Query()
	q.Set(ReturnToParam, returnTo)
	u.RawQuery = q.Encode()
	return u.String()
}

// Validate parses an HS256 token and checks its expiry.
func (a *JWTAuth) Validate(raw string) (*Claims, error) {
	token, err := gojwt.ParseWithClaims(raw, &Claims{}, func(t *gojwt.Token) (any, error) {
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.userID() == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Issue signs a token for userID. Production tokens come from the
// identity provider; this backs the token subcommand for local runs.
func (a *JWTAuth) Issue(userID string, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (c *Claims) userID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}
