package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const adminIssuer = "schoolnav"

// AdminClaims is the JWT payload issued to map editors.
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AdminAuth checks the single editor account and issues HS256 tokens.
type AdminAuth struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
}

// NewAdminAuth creates an AdminAuth. An empty password hash disables login.
func NewAdminAuth(username, passwordHash, secret string, ttl time.Duration) *AdminAuth {
	return &AdminAuth{
		username:     username,
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
	}
}

var errBadCredentials = errors.New("invalid username or password")

// Login verifies credentials and returns a signed token.
func (a *AdminAuth) Login(username, password string) (string, time.Time, error) {
	if len(a.passwordHash) == 0 || username != a.username {
		return "", time.Time{}, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, errBadCredentials
	}

	now := time.Now()
	expires := now.Add(a.ttl)
	claims := AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    adminIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Verify parses a token and returns its claims.
func (a *AdminAuth) Verify(token string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(adminIssuer),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginHandler exchanges editor credentials for a bearer token.
func AdminLoginHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Username == "" || req.Password == "" {
			return errBadRequest(c, "username and password are required")
		}

		token, expires, err := deps.Auth.Login(req.Username, req.Password)
		if err != nil {
			return errUnauthorized(c, err.Error())
		}
		return c.JSON(fiber.Map{
			"token":      token,
			"expires_at": expires.UTC(),
		})
	}
}

// RequireAdmin rejects requests without a valid bearer token.
func RequireAdmin(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return errUnauthorized(c, "missing bearer token")
		}
		claims, err := deps.Auth.Verify(token)
		if err != nil {
			return errUnauthorized(c, "invalid token")
		}
		c.Locals("admin", claims.Username)
		return c.Next()
	}
}
