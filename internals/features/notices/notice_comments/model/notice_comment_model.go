package model

import (
	"time"

	"github.com/google/uuid"

	snapsvc "churchbook_backend/internals/features/users/users/snapshot"
)

// NoticeCommentModel is a node of the comment tree under a notice. Replies point at
// their parent; siblings are ordered by GroupSortNumber.
type NoticeCommentModel struct {
	ID              uuid.UUID              `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ChurchID        uuid.UUID              `gorm:"column:church_id;type:uuid;not null" json:"church_id"`
	NoticeID        uuid.UUID              `gorm:"column:notice_id;type:uuid;not null;index:idx_notice_comments_parent" json:"notice_id"`
	ParentID        *uuid.UUID             `gorm:"column:parent_id;type:uuid;index:idx_notice_comments_parent" json:"parent_id,omitempty"`
	GroupSortNumber int                    `gorm:"column:group_sort_number;not null" json:"group_sort_number"`
	Content         string                 `gorm:"column:content;type:text;not null" json:"content"`
	Creator         snapsvc.AuthorSnapshot `gorm:"embedded;embeddedPrefix:created_by_" json:"creator"`
	LastModifier    snapsvc.AuthorSnapshot `gorm:"embedded;embeddedPrefix:last_modified_by_" json:"last_modifier"`
	CreatedAt       time.Time              `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time              `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (NoticeCommentModel) TableName() string { return "notice_comments" }

func (c *NoticeCommentModel) IsReply() bool { return c.ParentID != nil }
