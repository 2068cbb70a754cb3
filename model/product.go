package model

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yogapit/eshop/constant"
)

// ProductEntity represents the product table entity
type ProductEntity struct {
	ID              uint64                 `db:"id" json:"id"`
	Name            string                 `db:"name" json:"name"`
	Description     *string                `db:"description" json:"description,omitempty"`
	Price           decimal.Decimal        `db:"price" json:"price"`
	Status          constant.ProductStatus `db:"status" json:"status"`
	StockBratislava int64                  `db:"stock_bratislava" json:"stock_bratislava"`
	StockRuzomberok int64                  `db:"stock_ruzomberok" json:"stock_ruzomberok"`
	StockBezo       int64                  `db:"stock_bezo" json:"stock_bezo"`
	Language        constant.Language      `db:"language" json:"language"`
	ImageURL        *string                `db:"image_url" json:"image_url,omitempty"`
	LastCheckDate   *time.Time             `db:"last_check_date" json:"last_check_date,omitempty"`
	CategoryID      *uint64                `db:"category_id" json:"category_id,omitempty"`
	IsExclusive     bool                   `db:"is_exclusive" json:"is_exclusive"`
	WeightGrams     *int64                 `db:"weight_grams" json:"weight_grams,omitempty"`
	CreatedAt       time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time              `db:"updated_at" json:"updated_at"`
}

func (p *ProductEntity) Levels() StockLevels {
	return StockLevels{
		Bratislava: p.StockBratislava,
		Ruzomberok: p.StockRuzomberok,
		Bezo:       p.StockBezo,
	}
}

// ProductListItem is a product row joined with its category and availability.
type ProductListItem struct {
	ProductEntity
	CategoryName     *string `db:"category_name" json:"category_name,omitempty"`
	ReservedQuantity int64   `db:"reserved_quantity" json:"reserved_quantity"`
	AvailableStock   int64   `db:"available_stock" json:"available_stock"`
}

type ProductFilter struct {
	CategoryID    uint64
	ExclusiveOnly bool
	// AvailableOnly hides inactive products and products without free stock.
	AvailableOnly bool
	Search        string
	Page          int
	PerPage       int
}

type ProductListResponse struct {
	Items      []ProductListItem `json:"items"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
}

type ProductRequest struct {
	Name            string                 `json:"name" validate:"required,max=200"`
	Description     string                 `json:"description" validate:"max=2000"`
	Price           decimal.Decimal        `json:"price" validate:"price"`
	Status          constant.ProductStatus `json:"status"`
	StockBratislava int64                  `json:"stock_bratislava" validate:"gte=0"`
	StockRuzomberok int64                  `json:"stock_ruzomberok" validate:"gte=0"`
	StockBezo       int64                  `json:"stock_bezo" validate:"gte=0"`
	Language        constant.Language      `json:"language"`
	ImageURL        string                 `json:"image_url" validate:"omitempty,url"`
	LastCheckDate   *time.Time             `json:"last_check_date"`
	CategoryID      *uint64                `json:"category_id"`
	IsExclusive     bool                   `json:"is_exclusive"`
	WeightGrams     *int64                 `json:"weight_grams" validate:"omitempty,gte=0"`
}

type LastCheckRequest struct {
	LastCheckDate time.Time `json:"last_check_date" validate:"required"`
}

type Availability struct {
	ProductID        uint64 `json:"product_id"`
	TotalStock       int64  `json:"total_stock"`
	ReservedQuantity int64  `json:"reserved_quantity"`
	AvailableStock   int64  `json:"available_stock"`
}
