package dto

import "churchbook_backend/internals/constants"

type ChangeRoleRequest struct {
	Role constants.Role `json:"role"`
}

type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}
