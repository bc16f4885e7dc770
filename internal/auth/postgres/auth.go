package postgres

import (
	"database/sql"
	"fmt"

	"github.com/mahfuzhasan/officer-registry/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(email string) (*auth.User, string, error) {
	var user auth.User
	var passwordHash string

	query := `SELECT id, email, name, role, password_hash FROM users WHERE email = ? AND is_active = ?`
	row := r.db.Raw(query, email, true).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Role, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, "", fmt.Errorf("user not found")
		}
		return nil, "", err
	}
	return &user, passwordHash, nil
}

func (r *Repository) GetByID(userID int64) (*auth.User, error) {
	var user auth.User

	query := `SELECT id, email, name, role FROM users WHERE id = ? AND is_active = ?`
	row := r.db.Raw(query, userID, true).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}
