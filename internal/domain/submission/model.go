package submission

import (
	"time"

	"gorm.io/datatypes"
)

type Submission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FormID    uint      `json:"form_id" gorm:"not null;index"`
	UserID    string    `json:"user_id" gorm:"size:64;index"`
	CreatedAt time.Time `json:"created_at"`
	Answers   []Answer  `json:"answers,omitempty" gorm:"foreignKey:SubmissionID"`
}

// Answer stores {"value": <canonical value>, "type": <component kind>}.
type Answer struct {
	SubmissionID uint              `json:"submission_id" gorm:"primaryKey"`
	ComponentID  uint              `json:"component_id" gorm:"primaryKey"`
	Properties   datatypes.JSONMap `json:"properties"`
}

// Value reads the stored answer from properties.value, then properties.answer,
// falling back to the whole bag for rows written by older clients.
func (a Answer) Value() any {
	if a.Properties == nil {
		return nil
	}
	if v, ok := a.Properties["value"]; ok {
		return v
	}
	if v, ok := a.Properties["answer"]; ok {
		return v
	}
	return map[string]any(a.Properties)
}
