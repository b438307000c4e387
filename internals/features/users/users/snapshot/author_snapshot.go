package snapsvc

import (
	"github.com/google/uuid"

	"churchbook_backend/internals/constants"
	userModel "churchbook_backend/internals/features/users/users/model"
)

/* =========================================================
   AUTHOR SNAPSHOT
   Copied onto authored rows (notices, comments, events) at write time so the
   author still renders after the user row is gone.
========================================================= */

type AuthorSnapshot struct {
	ID    *uuid.UUID     `gorm:"column:id;type:uuid" json:"id,omitempty"`
	Name  string         `gorm:"column:name;type:varchar(50)" json:"name"`
	Role  constants.Role `gorm:"column:role;type:varchar(30)" json:"role"`
	Image *string        `gorm:"column:image;type:text" json:"image,omitempty"`
}

func FromUser(u *userModel.UserModel) AuthorSnapshot {
	id := u.ID
	return AuthorSnapshot{
		ID:    &id,
		Name:  u.Name,
		Role:  u.Role,
		Image: u.Image,
	}
}

// IsAuthor compares against the recorded id only; names may be reused.
func (a AuthorSnapshot) IsAuthor(userID uuid.UUID) bool {
	return a.ID != nil && *a.ID == userID
}

// RoleName is the display name at the time of writing.
func (a AuthorSnapshot) RoleName() string {
	if !a.Role.Valid() {
		return ""
	}
	return a.Role.Name()
}
