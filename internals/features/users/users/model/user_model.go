package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"churchbook_backend/internals/constants"
	churchModel "churchbook_backend/internals/features/churches/churches/model"
)

type UserModel struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ChurchID       uuid.UUID           `gorm:"column:church_id;type:uuid;not null;uniqueIndex:uq_users_church_name" json:"church_id"`
	CellID         *uuid.UUID          `gorm:"column:cell_id;type:uuid;index" json:"cell_id,omitempty"`
	Name           string              `gorm:"column:name;type:varchar(50);not null;uniqueIndex:uq_users_church_name" json:"name"`
	Password       *string             `gorm:"column:password;type:varchar(100)" json:"-"`
	Image          *string             `gorm:"column:image;type:text" json:"image,omitempty"`
	Age            *int                `gorm:"column:age" json:"age,omitempty"`
	Role           constants.Role      `gorm:"column:role;type:varchar(30);not null" json:"role"`
	Rank           constants.Rank      `gorm:"column:rank;type:varchar(30);not null" json:"rank"`
	Gender         constants.Gender    `gorm:"column:gender;type:varchar(10)" json:"gender,omitempty"`
	Birth          *datatypes.Date     `gorm:"column:birth;type:date" json:"birth,omitempty"`
	Address        churchModel.Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Contact        *string             `gorm:"column:contact;type:varchar(30)" json:"contact,omitempty"`
	IsLongAbsenced bool                `gorm:"column:is_long_absenced;not null;default:false" json:"is_long_absenced"`
	CreatedAt      time.Time           `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) InCell(cellID uuid.UUID) bool {
	return u.CellID != nil && *u.CellID == cellID
}

func (u *UserModel) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}
