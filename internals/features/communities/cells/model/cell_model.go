package model

import (
	"time"

	"github.com/google/uuid"
)

const cellNameSuffix = "셀"

type CellModel struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ChurchID  uuid.UUID  `gorm:"column:church_id;type:uuid;not null;uniqueIndex:uq_cells_church_name" json:"church_id"`
	GroupID   *uuid.UUID `gorm:"column:group_id;type:uuid;index" json:"group_id,omitempty"`
	LeaderID  uuid.UUID  `gorm:"column:leader_id;type:uuid;not null;index" json:"leader_id"`
	Name      string     `gorm:"column:name;type:varchar(60);not null;uniqueIndex:uq_cells_church_name" json:"name"`
	CreatedAt time.Time  `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (CellModel) TableName() string { return "cells" }

// CellName derives a cell's name from its leader, e.g. "홍길동셀".
func CellName(leaderName string) string { return leaderName + cellNameSuffix }

func (c *CellModel) InGroup(groupID uuid.UUID) bool {
	return c.GroupID != nil && *c.GroupID == groupID
}
