package user

// CurrentUserResponse is the GET /users/me payload. The password hash
// never leaves the domain type, and the role string is the resolved
// access role rather than the raw column value.
type CurrentUserResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func ToCurrentUserResponse(u *User) CurrentUserResponse {
	return CurrentUserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.AccessRole()),
		Department: u.Department,
	}
}
