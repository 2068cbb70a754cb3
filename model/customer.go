package model

import (
	"time"

	"github.com/yogapit/eshop/constant"
)

// CustomerEntity represents the customer table entity
type CustomerEntity struct {
	ID           uint64                `db:"id" json:"id"`
	Name         string                `db:"name" json:"name"`
	Email        string                `db:"email" json:"email"`
	Phone        string                `db:"phone" json:"phone"`
	Address      string                `db:"address" json:"address"`
	City         string                `db:"city" json:"city"`
	ZipCode      string                `db:"zip_code" json:"zip_code"`
	Country      string                `db:"country" json:"country"`
	CustomerType constant.CustomerType `db:"customer_type" json:"customer_type"`
	CreatedAt    time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time            `db:"updated_at" json:"updated_at,omitempty"`
}

// CustomerData is the contact part of a checkout or admin form.
type CustomerData struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type CustomerRequest struct {
	CustomerData
	CustomerType constant.CustomerType `json:"customer_type"`
}

// CustomerFilter for querying customers
type CustomerFilter struct {
	ID    uint64
	Email string
}
