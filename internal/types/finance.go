package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TransactionDirectionIncome  = "income"
	TransactionDirectionExpense = "expense"
)

type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date      time.Time `gorm:"not null;index;column:date" json:"date"`
	Amount    float64   `gorm:"not null;column:amount" json:"amount"`
	Direction string    `gorm:"not null;column:direction" json:"direction"`
	Category  string    `gorm:"not null;column:category" json:"category"`
	Notes     string    `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Transaction) TableName() string { return "transaction" }
