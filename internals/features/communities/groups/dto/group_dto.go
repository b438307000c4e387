package dto

import (
	"time"

	"github.com/google/uuid"

	cellModel "churchbook_backend/internals/features/communities/cells/model"
	"churchbook_backend/internals/features/communities/groups/model"
	userDto "churchbook_backend/internals/features/users/users/dto"
	userModel "churchbook_backend/internals/features/users/users/model"
)

type CreateGroupRequest struct {
	Name        string     `json:"name"          validate:"required,max=50"`
	LeaderID    uuid.UUID  `json:"leader_id"     validate:"required"`
	SubLeaderID *uuid.UUID `json:"sub_leader_id"`
}

// UpdateGroupRequest carries the full desired state; a nil SubLeaderID removes the
// sub-leader.
type UpdateGroupRequest struct {
	Name        string     `json:"name"          validate:"required,max=50"`
	LeaderID    uuid.UUID  `json:"leader_id"     validate:"required"`
	SubLeaderID *uuid.UUID `json:"sub_leader_id"`
}

type CellSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	LeaderID uuid.UUID `json:"leader_id"`
}

type GroupResponse struct {
	ID        uuid.UUID            `json:"id"`
	ChurchID  uuid.UUID            `json:"church_id"`
	Name      string               `json:"name"`
	Leader    *userDto.UserSummary `json:"leader"`
	SubLeader *userDto.UserSummary `json:"sub_leader"`
	Cells     []CellSummary        `json:"cells"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type GroupDetail struct {
	Group     *model.GroupModel
	Leader    *userModel.UserModel
	SubLeader *userModel.UserModel
	Cells     []cellModel.CellModel
}

func summary(u *userModel.UserModel) *userDto.UserSummary {
	if u == nil {
		return nil
	}
	s := userDto.SummaryOf(u)
	return &s
}

func (d *GroupDetail) Response() GroupResponse {
	cells := make([]CellSummary, 0, len(d.Cells))
	for _, c := range d.Cells {
		cells = append(cells, CellSummary{ID: c.ID, Name: c.Name, LeaderID: c.LeaderID})
	}
	return GroupResponse{
		ID:        d.Group.ID,
		ChurchID:  d.Group.ChurchID,
		Name:      d.Group.Name,
		Leader:    summary(d.Leader),
		SubLeader: summary(d.SubLeader),
		Cells:     cells,
		CreatedAt: d.Group.CreatedAt,
		UpdatedAt: d.Group.UpdatedAt,
	}
}

func Responses(rows []GroupDetail) []GroupResponse {
	out := make([]GroupResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Response())
	}
	return out
}
