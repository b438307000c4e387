package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttendanceModel struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ChurchID   uuid.UUID      `gorm:"column:church_id;type:uuid;not null" json:"church_id"`
	CellID     uuid.UUID      `gorm:"column:cell_id;type:uuid;not null;index" json:"cell_id"`
	UserID     uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_attendances_user_date" json:"user_id"`
	AttendedOn datatypes.Date `gorm:"column:attended_on;type:date;not null;uniqueIndex:uq_attendances_user_date" json:"attended_on"`
	IsAttended bool           `gorm:"column:is_attended;not null;default:false" json:"is_attended"`
	Note       *string        `gorm:"column:note;type:varchar(255)" json:"note,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (AttendanceModel) TableName() string { return "attendances" }

// Day truncates to the calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
