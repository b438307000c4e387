package dto

import (
	"time"

	"github.com/google/uuid"

	"churchbook_backend/internals/constants"
	userModel "churchbook_backend/internals/features/users/users/model"
)

type LoginRequest struct {
	ChurchID uuid.UUID `json:"church_id" validate:"required"`
	Name     string    `json:"name"      validate:"required,max=50"`
	Password string    `json:"password"  validate:"required"`
}

type RefreshRequest struct {
	AccessToken  string `json:"access_token"  validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthUser struct {
	ID       uuid.UUID      `json:"id"`
	ChurchID uuid.UUID      `json:"church_id"`
	Name     string         `json:"name"`
	Role     constants.Role `json:"role"`
	RoleName string         `json:"role_name"`
}

func AuthUserOf(u *userModel.UserModel) AuthUser {
	return AuthUser{
		ID:       u.ID,
		ChurchID: u.ChurchID,
		Name:     u.Name,
		Role:     u.Role,
		RoleName: u.Role.Name(),
	}
}

type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token,omitempty"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at,omitempty"`
	User             AuthUser  `json:"user"`
}
