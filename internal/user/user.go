package user

import (
	"errors"
	"time"

	userDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/user"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Department   string    `json:"department" db:"department"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// AccessRole resolves the stored role string against the closed role
// set; unrecognized values degrade to viewer.
func (u *User) AccessRole() privacy.Role {
	return privacy.ParseRole(u.Role)
}

func (u *User) IsAdmin() bool {
	return u.AccessRole() == privacy.RoleAdmin
}

func (u *User) HasStandingAccess() bool {
	role := u.AccessRole()
	return role == privacy.RoleAdmin || role == privacy.RoleHR
}

func (u *User) IsActiveUser() bool {
	return u.IsActive
}

var ErrNotFound = errors.New("user not found")

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Department:   u.Department,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Department:   u.Department,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
