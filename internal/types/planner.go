package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PlannerEvent struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title    string         `gorm:"not null;column:title" json:"title"`
	StartAt  time.Time      `gorm:"not null;index;column:start_at" json:"start_at"`
	EndAt    time.Time      `gorm:"not null;column:end_at" json:"end_at"`
	AllDay   bool           `gorm:"not null;default:false;column:all_day" json:"all_day"`
	Location string         `gorm:"column:location" json:"location"`
	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	Notes    string         `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PlannerEvent) TableName() string { return "planner_event" }
