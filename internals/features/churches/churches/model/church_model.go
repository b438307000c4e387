package model

import (
	"time"

	"github.com/google/uuid"
)

// Address is an embedded value object (columns prefixed with address_).
type Address struct {
	ZipCode *string `gorm:"column:zip_code;type:varchar(10)" json:"zip_code,omitempty"`
	Street  *string `gorm:"column:street;type:varchar(255)" json:"street,omitempty"`
}

type ChurchModel struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Address        Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	ManagerName    string    `gorm:"column:manager_name;type:varchar(50);not null" json:"manager_name"`
	ManagerContact string    `gorm:"column:manager_contact;type:varchar(30);not null" json:"manager_contact"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (ChurchModel) TableName() string { return "churches" }
