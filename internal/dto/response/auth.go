package response

import (
	"time"

	"movietix/internal/data/entity"
)

type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func UserToResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
	}
}
