package form

import (
	"time"

	"gorm.io/datatypes"
)

type FormStatus string

const (
	FormStatusDraft     FormStatus = "draft"
	FormStatusPublished FormStatus = "published"
)

type Form struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	Title      string      `json:"title" gorm:"not null"`
	UserID     string      `json:"user_id" gorm:"size:64;index"`
	Status     FormStatus  `json:"status" gorm:"size:20;not null;default:'draft'"`
	CreatedAt  time.Time   `json:"created_at"`
	Components []Component `json:"components,omitempty" gorm:"foreignKey:FormID"`
}

// Component is a stored form component. Settings is the legacy property bag;
// Properties wins on key collisions when the two are merged.
type Component struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	FormID     uint              `json:"form_id" gorm:"not null;index"`
	Type       string            `json:"type" gorm:"size:50;not null"`
	Name       string            `json:"name"`
	Properties datatypes.JSONMap `json:"properties"`
	Settings   datatypes.JSONMap `json:"settings,omitempty"`
}

// Raw returns the component in the loosely shaped form accepted by schema.Normalize.
func (c Component) Raw() map[string]any {
	raw := map[string]any{
		"id":      c.ID,
		"form_id": c.FormID,
		"type":    c.Type,
		"name":    c.Name,
	}
	if c.Properties != nil {
		raw["properties"] = map[string]any(c.Properties)
	}
	if c.Settings != nil {
		raw["settings"] = map[string]any(c.Settings)
	}
	return raw
}
