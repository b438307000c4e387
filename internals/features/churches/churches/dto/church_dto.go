package dto

import (
	"time"

	"github.com/google/uuid"

	"churchbook_backend/internals/features/churches/churches/model"
)

// PastorRequest optionally creates the first signed-in user together with the church.
type PastorRequest struct {
	Name     string `json:"name"     validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type CreateChurchRequest struct {
	Name           string         `json:"name"            validate:"required,max=100"`
	Address        model.Address  `json:"address"`
	ManagerName    string         `json:"manager_name"    validate:"required,max=50"`
	ManagerContact string         `json:"manager_contact" validate:"required,max=30"`
	Pastor         *PastorRequest `json:"pastor"          validate:"omitempty"`
}

type UpdateChurchRequest struct {
	Name           *string        `json:"name"            validate:"omitempty,max=100"`
	Address        *model.Address `json:"address"`
	ManagerName    *string        `json:"manager_name"    validate:"omitempty,max=50"`
	ManagerContact *string        `json:"manager_contact" validate:"omitempty,max=30"`
}

func (r *UpdateChurchRequest) Apply(m *model.ChurchModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Address != nil {
		m.Address = *r.Address
	}
	if r.ManagerName != nil {
		m.ManagerName = *r.ManagerName
	}
	if r.ManagerContact != nil {
		m.ManagerContact = *r.ManagerContact
	}
}

type ChurchResponse struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	Address        model.Address `json:"address"`
	ManagerName    string        `json:"manager_name"`
	ManagerContact string        `json:"manager_contact"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func FromModel(m *model.ChurchModel) ChurchResponse {
	return ChurchResponse{
		ID:             m.ID,
		Name:           m.Name,
		Address:        m.Address,
		ManagerName:    m.ManagerName,
		ManagerContact: m.ManagerContact,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func FromModels(rows []model.ChurchModel) []ChurchResponse {
	out := make([]ChurchResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
