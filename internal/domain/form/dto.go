package form

import (
	"time"

	"github.com/linskybing/formflow/pkg/schema"
)

type ComponentInput struct {
	Type       string         `json:"type" binding:"required" example:"text"`
	Name       string         `json:"name" example:"Full name"`
	Order      *float64       `json:"order" example:"0"`
	Properties map[string]any `json:"properties"`
}

type CreateFormDTO struct {
	Title      string           `json:"title" example:"Customer survey"`
	UserID     string           `json:"userId" example:"6f1c2a9e-0000-4000-8000-000000000001"`
	Components []ComponentInput `json:"components"`
}

type CreateComponentDTO struct {
	FormID uint `json:"form_id" binding:"required" example:"1"`
	ComponentInput
}

type RenameFormDTO struct {
	Title string `json:"title" binding:"required" example:"Renamed survey"`
}

type DeleteFormDTO struct {
	Confirm bool `json:"confirm" example:"true"`
}

// FormView is a form with its components normalized and in canonical order.
type FormView struct {
	ID         uint                `json:"id"`
	Title      string              `json:"title"`
	UserID     string              `json:"userId"`
	Status     FormStatus          `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	Components []schema.Descriptor `json:"components"`
}
