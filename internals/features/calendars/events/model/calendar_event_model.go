package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	snapsvc "churchbook_backend/internals/features/users/users/snapshot"
)

// CalendarEventModel: one entry of a church's calendar.
type CalendarEventModel struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ChurchID  uuid.UUID              `gorm:"column:church_id;type:uuid;not null;index:idx_calendar_events_church_start" json:"church_id"`
	Title     string                 `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Content   *string                `gorm:"column:content;type:text" json:"content,omitempty"`
	StartAt   time.Time              `gorm:"column:start_at;type:timestamptz;not null;index:idx_calendar_events_church_start" json:"start_at"`
	EndAt     time.Time              `gorm:"column:end_at;type:timestamptz;not null" json:"end_at"`
	AllDay    bool                   `gorm:"column:all_day;not null;default:false" json:"all_day"`
	Meta      datatypes.JSON         `gorm:"column:meta;type:jsonb" json:"meta,omitempty"`
	Creator   snapsvc.AuthorSnapshot `gorm:"embedded;embeddedPrefix:created_by_" json:"creator"`
	CreatedAt time.Time              `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time              `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (CalendarEventModel) TableName() string { return "calendar_events" }

// Overlaps reports whether the event intersects [from, to).
func (e *CalendarEventModel) Overlaps(from, to time.Time) bool {
	return e.StartAt.Before(to) && !e.EndAt.Before(from)
}
