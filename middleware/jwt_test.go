package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnpath/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTApp(t *testing.T) *fiber.App {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := fiber.New()
	app.Get("/me", JWTMiddleware, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{"user_id": c.Locals("userId"), "role": c.Locals("role")})
	})
	return app
}

func status(t *testing.T, app *fiber.App, auth string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestJWTMiddleware(t *testing.T) {
	app := newJWTApp(t)
	token, err := GenerateJWT(7, "Ada", "USER", "ada@example.com")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, status(t, app, "Bearer "+token))
	assert.Equal(t, http.StatusUnauthorized, status(t, app, ""))
	assert.Equal(t, http.StatusUnauthorized, status(t, app, token), "missing Bearer prefix")
	assert.Equal(t, http.StatusUnauthorized, status(t, app, "Bearer "+token+"x"))
}

func TestJWTMiddlewareRejectsExpiredAndForeignTokens(t *testing.T) {
	app := newJWTApp(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": 7, "exp": time.Now().Add(-time.Hour).Unix()})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status(t, app, "Bearer "+signed))

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": 7})
	signed, err = foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status(t, app, "Bearer "+signed))

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"name": "Ada"})
	signed, err = noUser.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status(t, app, "Bearer "+signed))
}

func TestParseJWT(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	token, err := GenerateJWT(7, "Ada", "ADMIN", "ada@example.com")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": 7})
	signed, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseJWT(signed)
	assert.Error(t, err)
}
