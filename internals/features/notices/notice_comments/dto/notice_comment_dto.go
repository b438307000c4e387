package dto

import (
	"time"

	"github.com/google/uuid"

	"churchbook_backend/internals/features/notices/notice_comments/model"
	noticeDto "churchbook_backend/internals/features/notices/notices/dto"
)

type CreateCommentRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
	Content  string     `json:"content" validate:"required,max=2000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type CommentResponse struct {
	ID              uuid.UUID                `json:"id"`
	NoticeID        uuid.UUID                `json:"notice_id"`
	ParentID        *uuid.UUID               `json:"parent_id,omitempty"`
	GroupSortNumber int                      `json:"group_sort_number"`
	Content         string                   `json:"content"`
	CreatedBy       noticeDto.AuthorResponse `json:"created_by"`
	LastModified    noticeDto.AuthorResponse `json:"last_modified_by"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
	Replies         []CommentResponse        `json:"replies,omitempty"`
}

func FromModel(m *model.NoticeCommentModel) CommentResponse {
	return CommentResponse{
		ID:              m.ID,
		NoticeID:        m.NoticeID,
		ParentID:        m.ParentID,
		GroupSortNumber: m.GroupSortNumber,
		Content:         m.Content,
		CreatedBy:       noticeDto.AuthorOf(m.Creator),
		LastModified:    noticeDto.AuthorOf(m.LastModifier),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// CommentNode is a comment with its replies, siblings ordered by GroupSortNumber.
type CommentNode struct {
	Comment model.NoticeCommentModel
	Replies []CommentNode
}

func (n *CommentNode) Response() CommentResponse {
	out := FromModel(&n.Comment)
	for i := range n.Replies {
		out.Replies = append(out.Replies, n.Replies[i].Response())
	}
	return out
}

func Tree(nodes []CommentNode) []CommentResponse {
	out := make([]CommentResponse, 0, len(nodes))
	for i := range nodes {
		out = append(out, nodes[i].Response())
	}
	return out
}
