// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email"    validate:"required,email,max=120"`
}

// SetAdminRequest uses a pointer so a missing flag is distinguishable from an
// explicit false; only a boolean is accepted.
type SetAdminRequest struct {
	IsAdmin *bool `json:"is_admin" validate:"required"`
}

type ProfileResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

type AdminUserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func ToProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}

func ToAdminUserResponse(u *User) AdminUserResponse {
	return AdminUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func ToAdminUserResponseList(users []User) []AdminUserResponse {
	responses := make([]AdminUserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToAdminUserResponse(&u))
	}
	return responses
}
