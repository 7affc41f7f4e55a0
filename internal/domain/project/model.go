package project

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project is a unit of work with optional estimates and its ordered steps and materials.
type Project struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours,omitempty"`
	ActualHours    *decimal.Decimal `json:"actual_hours,omitempty"`
	Difficulty     *int             `json:"difficulty,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	Steps          []Step           `json:"steps,omitempty"`
	Materials      []Material       `json:"materials,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Step is one instruction of a project. Order is 1-based within the project.
type Step struct {
	ID        int    `json:"id"`
	ProjectID int    `json:"project_id"`
	Text      string `json:"text"`
	Order     int    `json:"order"`
}

// Material is something a project needs, with an optional quantity and unit cost.
type Material struct {
	ID          int              `json:"id"`
	ProjectID   int              `json:"project_id"`
	Name        string           `json:"name"`
	NumRequired *int             `json:"num_required,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
}
