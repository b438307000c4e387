package dto

import (
	"time"

	"github.com/google/uuid"

	"churchbook_backend/internals/features/communities/cells/model"
	groupModel "churchbook_backend/internals/features/communities/groups/model"
	userDto "churchbook_backend/internals/features/users/users/dto"
	userModel "churchbook_backend/internals/features/users/users/model"
)

type CreateCellRequest struct {
	GroupID  *uuid.UUID `json:"group_id"`
	LeaderID uuid.UUID  `json:"leader_id" validate:"required"`
}

// UpdateCellRequest replaces group and leader. A nil GroupID detaches the cell.
type UpdateCellRequest struct {
	GroupID  *uuid.UUID `json:"group_id"`
	LeaderID uuid.UUID  `json:"leader_id" validate:"required"`
}

type GroupSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func GroupSummaryOf(g *groupModel.GroupModel) *GroupSummary {
	if g == nil {
		return nil
	}
	return &GroupSummary{ID: g.ID, Name: g.Name}
}

type CellResponse struct {
	ID          uuid.UUID             `json:"id"`
	ChurchID    uuid.UUID             `json:"church_id"`
	Name        string                `json:"name"`
	Group       *GroupSummary         `json:"group"`
	Leader      *userDto.UserSummary  `json:"leader"`
	Members     []userDto.UserSummary `json:"members,omitempty"`
	MemberCount int                   `json:"member_count"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// CellDetail is a cell with its leader, group and members. members holds every user in
// the cell except the leader.
type CellDetail struct {
	Cell    *model.CellModel
	Group   *groupModel.GroupModel
	Leader  *userModel.UserModel
	Members []userModel.UserModel
}

func (d *CellDetail) Response(withMembers bool) CellResponse {
	out := CellResponse{
		ID:          d.Cell.ID,
		ChurchID:    d.Cell.ChurchID,
		Name:        d.Cell.Name,
		Group:       GroupSummaryOf(d.Group),
		MemberCount: len(d.Members),
		CreatedAt:   d.Cell.CreatedAt,
		UpdatedAt:   d.Cell.UpdatedAt,
	}
	if d.Leader != nil {
		s := userDto.SummaryOf(d.Leader)
		out.Leader = &s
	}
	if withMembers {
		out.Members = userDto.SummariesOf(d.Members)
	}
	return out
}

func Responses(rows []CellDetail) []CellResponse {
	out := make([]CellResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Response(false))
	}
	return out
}
