package middleware

import (
	"errors"
	"strings"
	"time"

	"learnpath/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const tokenTTL = 24 * time.Hour

// LearnerClaims is the payload of the access tokens issued at login.
type LearnerClaims struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

var errNoSubject = errors.New("token has no user")

// GenerateJWT signs an access token for the user, valid for a day.
func GenerateJWT(userID uint, name, role, email string) (string, error) {
	now := time.Now()
	claims := LearnerClaims{
		UserID: userID,
		Name:   name,
		Role:   role,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.AppConfig.JWTKey))
}

// ParseJWT verifies an HS256 token signed with the configured key.
func ParseJWT(tokenString string) (*LearnerClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &LearnerClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.UserID == 0 {
		return nil, errNoSubject
	}
	return claims, nil
}

// JWTMiddleware requires a bearer token and stores userId and role in locals.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return unauthorized(c, "Missing or invalid Authorization header")
	}
	tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		return unauthorized(c, "Invalid Authorization header format")
	}

	claims, err := ParseJWT(tokenString)
	switch {
	case errors.Is(err, errNoSubject):
		return unauthorized(c, "Invalid token payload")
	case err != nil:
		return unauthorized(c, "Invalid or expired token")
	}

	c.Locals("userId", claims.UserID)
	if claims.Role != "" {
		c.Locals("role", claims.Role)
	}
	return c.Next()
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status":  false,
		"message": message,
	})
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
