package model

import (
	"time"

	"github.com/google/uuid"

	snapsvc "churchbook_backend/internals/features/users/users/snapshot"
)

type NoticeModel struct {
	ID           uuid.UUID              `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ChurchID     uuid.UUID              `gorm:"column:church_id;type:uuid;not null;index" json:"church_id"`
	Title        string                 `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Content      string                 `gorm:"column:content;type:text;not null" json:"content"`
	Views        int64                  `gorm:"column:views;not null;default:0" json:"views"`
	Creator      snapsvc.AuthorSnapshot `gorm:"embedded;embeddedPrefix:created_by_" json:"creator"`
	LastModifier snapsvc.AuthorSnapshot `gorm:"embedded;embeddedPrefix:last_modified_by_" json:"last_modifier"`
	CreatedAt    time.Time              `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time              `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (NoticeModel) TableName() string { return "notices" }
