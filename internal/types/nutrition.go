package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a named nutritional reference. Macro fields are per ONE
// unit of the ingredient, derived from recipe lines (which carry absolute
// macros for their quantity). Name matching is case-insensitive everywhere;
// the stored name keeps the casing it was first seen with.
type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Unit     *string   `gorm:"column:unit" json:"unit,omitempty"`
	Calories float64   `gorm:"not null;default:0;column:calories" json:"calories"`
	Protein  float64   `gorm:"not null;default:0;column:protein" json:"protein"`
	Carbs    float64   `gorm:"not null;default:0;column:carbs" json:"carbs"`
	Fat      float64   `gorm:"not null;default:0;column:fat" json:"fat"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Ingredient) TableName() string { return "ingredient" }

// Recipe totals are derived, never authored: they are rewritten from the
// sum of the current lines every time the lines change.
type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Servings    int       `gorm:"not null;default:1;column:servings" json:"servings"`

	TotalCalories float64 `gorm:"not null;default:0;column:total_calories" json:"total_calories"`
	TotalProtein  float64 `gorm:"not null;default:0;column:total_protein" json:"total_protein"`
	TotalCarbs    float64 `gorm:"not null;default:0;column:total_carbs" json:"total_carbs"`
	TotalFat      float64 `gorm:"not null;default:0;column:total_fat" json:"total_fat"`

	Lines []*RecipeIngredient `gorm:"foreignKey:RecipeID;references:ID" json:"lines,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Recipe) TableName() string { return "recipe" }

// RecipeIngredient macro fields are absolute for this line's quantity, not
// per unit. Lines are replaced wholesale on recipe create/update.
type RecipeIngredient struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Recipe       *Recipe     `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"recipe,omitempty"`
	IngredientID uuid.UUID   `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID;references:ID" json:"ingredient,omitempty"`

	Name     string  `gorm:"not null;column:name" json:"name"`
	Quantity float64 `gorm:"not null;column:quantity" json:"quantity"`
	Unit     *string `gorm:"column:unit" json:"unit,omitempty"`
	Calories float64 `gorm:"not null;default:0;column:calories" json:"calories"`
	Protein  float64 `gorm:"not null;default:0;column:protein" json:"protein"`
	Carbs    float64 `gorm:"not null;default:0;column:carbs" json:"carbs"`
	Fat      float64 `gorm:"not null;default:0;column:fat" json:"fat"`
	Ordering int     `gorm:"not null;default:0;column:ordering" json:"ordering"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredient" }

type MealPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_meal_plan_user_week,unique" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	WeekStart time.Time `gorm:"not null;index:idx_meal_plan_user_week,unique;column:week_start" json:"week_start"`

	Slots []*MealSlot `gorm:"foreignKey:MealPlanID;references:ID" json:"slots,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (MealPlan) TableName() string { return "meal_plan" }

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

type MealSlot struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MealPlanID uuid.UUID  `gorm:"type:uuid;not null;index" json:"meal_plan_id"`
	MealPlan   *MealPlan  `gorm:"constraint:OnDelete:CASCADE;foreignKey:MealPlanID;references:ID" json:"meal_plan,omitempty"`
	Date       time.Time  `gorm:"not null;column:date" json:"date"`
	MealType   string     `gorm:"not null;column:meal_type" json:"meal_type"`
	RecipeID   *uuid.UUID `gorm:"type:uuid;index" json:"recipe_id,omitempty"`
	Recipe     *Recipe    `gorm:"constraint:OnDelete:SET NULL;foreignKey:RecipeID;references:ID" json:"recipe,omitempty"`
	Notes      string     `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (MealSlot) TableName() string { return "meal_slot" }

// PantryItem quantity is floored at 0 and rounded to 3 decimals on every
// write. Keyed by (user, name) with exact stored name; matching against
// recipe lines is case-insensitive.
type PantryItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_pantry_user_name,unique" json:"user_id"`
	User     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name     string    `gorm:"not null;index:idx_pantry_user_name,unique;column:name" json:"name"`
	Quantity float64   `gorm:"not null;default:0;column:quantity" json:"quantity"`
	Unit     *string   `gorm:"column:unit" json:"unit,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PantryItem) TableName() string { return "pantry_item" }

const (
	ShoppingSourceAuto   = "AUTO"
	ShoppingSourceManual = "MANUAL"
)

// AUTO items are fully regenerated on each reconciler run; MANUAL items are
// only ever touched by direct user action.
type ShoppingListItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name     string    `gorm:"not null;column:name" json:"name"`
	Quantity float64   `gorm:"not null;default:0;column:quantity" json:"quantity"`
	Unit     *string   `gorm:"column:unit" json:"unit,omitempty"`
	Checked  bool      `gorm:"not null;default:false;column:checked" json:"checked"`
	Source   string    `gorm:"not null;default:MANUAL;column:source" json:"source"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ShoppingListItem) TableName() string { return "shopping_list_item" }

// DailyLog macros are derived from the linked recipe when RecipeID is set
// (explicit macro fields in the request are ignored); otherwise they are
// authored directly.
type DailyLog struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date     time.Time  `gorm:"not null;index;column:date" json:"date"`
	MealType string     `gorm:"column:meal_type" json:"meal_type"`
	RecipeID *uuid.UUID `gorm:"type:uuid;index" json:"recipe_id,omitempty"`
	Recipe   *Recipe    `gorm:"constraint:OnDelete:SET NULL;foreignKey:RecipeID;references:ID" json:"recipe,omitempty"`
	Servings float64    `gorm:"not null;default:1;column:servings" json:"servings"`

	Calories float64 `gorm:"not null;default:0;column:calories" json:"calories"`
	Protein  float64 `gorm:"not null;default:0;column:protein" json:"protein"`
	Carbs    float64 `gorm:"not null;default:0;column:carbs" json:"carbs"`
	Fat      float64 `gorm:"not null;default:0;column:fat" json:"fat"`
	Notes    string  `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (DailyLog) TableName() string { return "daily_log" }
