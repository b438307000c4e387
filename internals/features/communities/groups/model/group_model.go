package model

import (
	"time"

	"github.com/google/uuid"
)

// GroupModel is a "family" (팸): a leadership unit owning zero or more cells.
type GroupModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ChurchID    uuid.UUID  `gorm:"column:church_id;type:uuid;not null;uniqueIndex:uq_groups_church_name" json:"church_id"`
	LeaderID    uuid.UUID  `gorm:"column:leader_id;type:uuid;not null;index" json:"leader_id"`
	SubLeaderID *uuid.UUID `gorm:"column:sub_leader_id;type:uuid;index" json:"sub_leader_id,omitempty"`
	Name        string     `gorm:"column:name;type:varchar(50);not null;uniqueIndex:uq_groups_church_name" json:"name"`
	CreatedAt   time.Time  `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (GroupModel) TableName() string { return "groups" }

// IsHeadedBy reports whether userID is the leader or the sub-leader.
func (g *GroupModel) IsHeadedBy(userID uuid.UUID) bool {
	if g.LeaderID == userID {
		return true
	}
	return g.SubLeaderID != nil && *g.SubLeaderID == userID
}
