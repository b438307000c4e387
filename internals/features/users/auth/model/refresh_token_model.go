package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel is keyed by the token id carried in the access token's `sub`.
type RefreshTokenModel struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`

	// HMAC of the token, never the plaintext
	TokenHash []byte `gorm:"column:token_hash;type:bytea;not null" json:"-"`

	ExpiresAt time.Time `gorm:"column:expires_at;type:timestamptz;not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

func (t *RefreshTokenModel) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
