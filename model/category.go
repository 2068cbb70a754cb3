package model

import "time"

type CategoryEntity struct {
	ID          uint64    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	IsExclusive bool      `db:"is_exclusive" json:"is_exclusive"`
	IsCustom    bool      `db:"is_custom" json:"is_custom"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsExclusive bool    `json:"is_exclusive"`
	// IsCustom is only honoured on update; new categories are always custom.
	IsCustom bool `json:"is_custom"`
}
