package http_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	api "bikerental/internal/adapters/in/http"
	"bikerental/internal/core/ports"
	"bikerental/internal/pkg/errs"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) *api.JWTAuth {
	t.Helper()
	auth, err := api.NewJWTAuth(testSecret, "https://id.example.com/login", slog.Default())
	require.NoError(t, err)
	return auth
}

func TestNewJWTAuth_Validation(t *testing.T) {
	_, err := api.NewJWTAuth("", "", slog.Default())

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestJWTAuth_IssueAndValidate(t *testing.T) {
	auth := newAuth(t)

	raw, err := auth.Issue("user-1", "rider@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := auth.Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "rider@example.com", claims.Email)
}

func TestJWTAuth_Validate_Rejects(t *testing.T) {
	auth := newAuth(t)

	expired, err := auth.Issue("user-1", "", -time.Minute)
	require.NoError(t, err)

	other, err := api.NewJWTAuth("other-secret", "https://id.example.com/login", slog.Default())
	require.NoError(t, err)
	foreign, err := other.Issue("user-1", "", time.Hour)
	require.NoError(t, err)

	noUser, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, api.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"expired":        expired,
		"wrong secret":   foreign,
		"missing user":   noUser,
		"not a token":    "garbage",
		"unsigned token": "eyJhbGciOiJub25lIn0.eyJ1c2VyX2lkIjoidSJ9.",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := auth.Validate(raw)
			assert.Error(t, err)
		})
	}
}

func TestJWTAuth_Validate_AcceptsSubjectAsUser(t *testing.T) {
	auth := newAuth(t)
	raw, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, api.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "user-7",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.Validate(raw)

	assert.NoError(t, err)
}

func TestJWTAuth_Middleware(t *testing.T) {
	auth := newAuth(t)
	token, err := auth.Issue("user-1", "rider@example.com", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name      string
		header    string
		wantFound bool
	}{
		{"valid bearer", "Bearer " + token, true},
		{"no header", "", false},
		{"invalid bearer", "Bearer nope", false},
		{"other scheme", "Basic dXNlcjpwYXNz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			var (
				got   ports.Principal
				found bool
			)
			e.GET("/who", func(c echo.Context) error {
				got, found = auth.Principal(c.Request().Context())
				return c.NoContent(http.StatusOK)
			}, auth.Middleware())

			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code, "anonymous requests are not rejected")
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, "user-1", got.UserID)
				assert.Equal(t, "rider@example.com", got.Email)
				assert.Equal(t, token, got.Token)
			}
		})
	}
}

func TestJWTAuth_LoginURL(t *testing.T) {
	auth, err := api.NewJWTAuth(testSecret, "https://id.example.com/login?client=web", slog.Default())
	require.NoError(t, err)

	raw := auth.LoginURL("/book?resume=abc")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "id.example.com", u.Host)
	assert.Equal(t, "/login", u.Path)
	assert.Equal(t, "web", u.Query().Get("client"))
	assert.Equal(t, "/book?resume=abc", u.Query().Get(api.ReturnToParam))
}
