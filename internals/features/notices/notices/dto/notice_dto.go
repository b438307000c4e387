package dto

import (
	"time"

	"github.com/google/uuid"

	"churchbook_backend/internals/features/notices/notices/model"
	snapsvc "churchbook_backend/internals/features/users/users/snapshot"
)

type CreateNoticeRequest struct {
	Title   string `json:"title"   validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type UpdateNoticeRequest struct {
	Title   *string `json:"title"   validate:"omitempty,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

type AuthorResponse struct {
	ID       *uuid.UUID `json:"id,omitempty"`
	Name     string     `json:"name"`
	RoleName string     `json:"role_name"`
	Image    *string    `json:"image,omitempty"`
}

func AuthorOf(a snapsvc.AuthorSnapshot) AuthorResponse {
	return AuthorResponse{ID: a.ID, Name: a.Name, RoleName: a.RoleName(), Image: a.Image}
}

type NoticeResponse struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Content      string         `json:"content,omitempty"`
	Views        int64          `json:"views"`
	CreatedBy    AuthorResponse `json:"created_by"`
	LastModified AuthorResponse `json:"last_modified_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func FromModel(m *model.NoticeModel) NoticeResponse {
	return NoticeResponse{
		ID:           m.ID,
		Title:        m.Title,
		Content:      m.Content,
		Views:        m.Views,
		CreatedBy:    AuthorOf(m.Creator),
		LastModified: AuthorOf(m.LastModifier),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromModels drops the body for list views.
func FromModels(rows []model.NoticeModel) []NoticeResponse {
	out := make([]NoticeResponse, 0, len(rows))
	for i := range rows {
		r := FromModel(&rows[i])
		r.Content = ""
		out = append(out, r)
	}
	return out
}
