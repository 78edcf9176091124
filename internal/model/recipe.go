package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONStringArray stores a string slice as a JSON-encoded column. Legacy
// clients serialized these fields as JSON strings nested inside JSON, so
// decoding accepts both shapes.
type JSONStringArray []string

// Value implements the driver.Valuer interface
func (a JSONStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// UnmarshalJSON accepts either a JSON array of strings or a JSON-encoded
// string holding such an array ("[\"a\",\"b\"]").
func (a *JSONStringArray) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*a = items
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("string array: expected array or encoded string: %w", err)
	}
	if encoded == "" {
		*a = JSONStringArray{}
		return nil
	}
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return fmt.Errorf("string array: invalid encoded string: %w", err)
	}
	*a = items
	return nil
}

type Recipe struct {
	ID          uuid.UUID       `gorm:"type:varchar(36);primary_key" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	ImageURL    string          `gorm:"size:255" json:"image_url"`
	Ingredients JSONStringArray `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
	Steps       StepList        `gorm:"type:text;not null;default:'[]'" json:"steps"`
	PrepTime    string          `gorm:"size:50" json:"prep_time"`
	CookTime    string          `gorm:"size:50" json:"cook_time"`
	Difficulty  string          `gorm:"size:20" json:"difficulty"`
	Cuisine     string          `gorm:"size:50" json:"cuisine"`
	Category    string          `gorm:"size:50" json:"category"`
	UserID      uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"user_id"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
