package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
	"golang.org/x/crypto/bcrypt"
)

// User is the authenticated account attached to each request. Role is
// the single closed-set role the privacy layer evaluates against.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// Actor converts the account into the caller context the protection
// core consumes. Unknown roles degrade to viewer here, at the boundary.
func (u *User) Actor() privacy.Actor {
	return privacy.Actor{
		ID:   u.ID,
		Role: privacy.ParseRole(u.Role),
	}
}

func (u *User) IsAdmin() bool {
	return privacy.ParseRole(u.Role) == privacy.RoleAdmin
}

// HasStandingAccess mirrors the privacy layer's admin/hr bypass.
func (u *User) HasStandingAccess() bool {
	return u.Actor().HasStandingAccess()
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUser(userID int64) (*User, error)
	HashPassword(password string) (string, error)
}

// RepositoryAPI is the account store consulted during login and on each
// authenticated request.
type RepositoryAPI interface {
	GetByEmail(email string) (user *User, passwordHash string, err error)
	GetByID(userID int64) (*User, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID, email, role string) (token string, err error)
	GenerateRefreshToken(userID, email, role string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims carries identity plus role so the middleware can reject without
// a lookup, though the user is still reloaded to pick up role changes.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
