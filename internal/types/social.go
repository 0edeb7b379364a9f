package types

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name          string     `gorm:"not null;column:name" json:"name"`
	Relation      string     `gorm:"column:relation" json:"relation"`
	Birthday      *time.Time `gorm:"column:birthday" json:"birthday,omitempty"`
	LastContactAt *time.Time `gorm:"column:last_contact_at" json:"last_contact_at,omitempty"`
	Notes         string     `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Contact) TableName() string { return "contact" }
