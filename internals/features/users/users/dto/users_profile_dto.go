package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"churchbook_backend/internals/constants"
	churchModel "churchbook_backend/internals/features/churches/churches/model"
	"churchbook_backend/internals/features/users/users/model"
)

/* =========
   Response
   ========= */

type UserResponse struct {
	ID             uuid.UUID           `json:"id"`
	ChurchID       uuid.UUID           `json:"church_id"`
	CellID         *uuid.UUID          `json:"cell_id,omitempty"`
	Name           string              `json:"name"`
	Image          *string             `json:"image,omitempty"`
	Age            *int                `json:"age,omitempty"`
	Role           constants.Role      `json:"role"`
	RoleName       string              `json:"role_name"`
	Rank           constants.Rank      `json:"rank"`
	Gender         constants.Gender    `json:"gender,omitempty"`
	Birth          *datatypes.Date     `json:"birth,omitempty"`
	Address        churchModel.Address `json:"address"`
	Contact        *string             `json:"contact,omitempty"`
	IsLongAbsenced bool                `json:"is_long_absenced"`
	HasPassword    bool                `json:"has_password"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func FromModel(m *model.UserModel) UserResponse {
	return UserResponse{
		ID:             m.ID,
		ChurchID:       m.ChurchID,
		CellID:         m.CellID,
		Name:           m.Name,
		Image:          m.Image,
		Age:            m.Age,
		Role:           m.Role,
		RoleName:       m.Role.Name(),
		Rank:           m.Rank,
		Gender:         m.Gender,
		Birth:          m.Birth,
		Address:        m.Address,
		Contact:        m.Contact,
		IsLongAbsenced: m.IsLongAbsenced,
		HasPassword:    m.HasPassword(),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func FromModels(rows []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

// UserSummary is embedded in cell/group views.
type UserSummary struct {
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Role     constants.Role `json:"role"`
	RoleName string         `json:"role_name"`
	Image    *string        `json:"image,omitempty"`
}

func SummaryOf(m *model.UserModel) UserSummary {
	return UserSummary{ID: m.ID, Name: m.Name, Role: m.Role, RoleName: m.Role.Name(), Image: m.Image}
}

func SummariesOf(rows []model.UserModel) []UserSummary {
	out := make([]UserSummary, 0, len(rows))
	for i := range rows {
		out = append(out, SummaryOf(&rows[i]))
	}
	return out
}

/* =========
   Create
   ========= */

type CreateUserRequest struct {
	Name           string              `json:"name"    validate:"required,max=50"`
	Image          *string             `json:"image"   validate:"omitempty,url"`
	Age            *int                `json:"age"     validate:"omitempty,min=0,max=150"`
	Role           constants.Role      `json:"role"`
	Rank           constants.Rank      `json:"rank"`
	Gender         constants.Gender    `json:"gender"`
	Birth          *datatypes.Date     `json:"birth"`
	Address        churchModel.Address `json:"address"`
	Contact        *string             `json:"contact" validate:"omitempty,max=30"`
	IsLongAbsenced bool                `json:"is_long_absenced"`
}

/* =========
   Update (partial)
   ========= */

// UpdateUserRequest: nil fields are left unchanged. CellID with ClearCell=false moves the
// user into that cell; ClearCell=true removes them from their cell.
type UpdateUserRequest struct {
	Name           *string              `json:"name"    validate:"omitempty,max=50"`
	Image          *string              `json:"image"   validate:"omitempty,url"`
	Age            *int                 `json:"age"     validate:"omitempty,min=0,max=150"`
	Rank           *constants.Rank      `json:"rank"`
	Gender         *constants.Gender    `json:"gender"`
	Birth          *datatypes.Date      `json:"birth"`
	Address        *churchModel.Address `json:"address"`
	Contact        *string              `json:"contact" validate:"omitempty,max=30"`
	IsLongAbsenced *bool                `json:"is_long_absenced"`
	CellID         *uuid.UUID           `json:"cell_id"`
	ClearCell      bool                 `json:"clear_cell"`
}

/* =========
   Query
   ========= */

type ListUsersQuery struct {
	Role       string `query:"role"`
	CellID     string `query:"cell_id"`
	Name       string `query:"name"`
	LongAbsent string `query:"long_absent"`
}
