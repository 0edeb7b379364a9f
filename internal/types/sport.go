package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Workout exercises are stored as a JSON payload rather than child rows:
// entries are only ever read and written together with their workout.
type Workout struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date        time.Time      `gorm:"not null;index;column:date" json:"date"`
	Name        string         `gorm:"not null;column:name" json:"name"`
	DurationMin int            `gorm:"not null;default:0;column:duration_min" json:"duration_min"`
	Exercises   datatypes.JSON `gorm:"column:exercises" json:"exercises"`
	Notes       string         `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Workout) TableName() string { return "workout" }

// WorkoutExercise is the shape of one entry in Workout.Exercises.
type WorkoutExercise struct {
	Name     string  `json:"name"`
	Sets     int     `json:"sets,omitempty"`
	Reps     int     `json:"reps,omitempty"`
	WeightKg float64 `json:"weight_kg,omitempty"`
}
