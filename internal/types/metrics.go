package types

import (
	"time"

	"github.com/google/uuid"
)

type BodyMetric struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_body_metric_user_date,unique" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date       time.Time `gorm:"not null;index:idx_body_metric_user_date,unique;column:date" json:"date"`
	WeightKg   *float64  `gorm:"column:weight_kg" json:"weight_kg,omitempty"`
	BodyFatPct *float64  `gorm:"column:body_fat_pct" json:"body_fat_pct,omitempty"`
	Notes      string    `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (BodyMetric) TableName() string { return "body_metric" }
