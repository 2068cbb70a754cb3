package model

import (
	"github.com/shopspring/decimal"
	"github.com/yogapit/eshop/constant"
)

// StockLevels is the per-warehouse physical stock of one product.
type StockLevels struct {
	Bratislava int64 `db:"stock_bratislava" json:"stock_bratislava"`
	Ruzomberok int64 `db:"stock_ruzomberok" json:"stock_ruzomberok"`
	Bezo       int64 `db:"stock_bezo" json:"stock_bezo"`
}

func (s StockLevels) Total() int64 {
	return s.Bratislava + s.Ruzomberok + s.Bezo
}

func (s StockLevels) Get(w constant.Warehouse) int64 {
	switch w {
	case constant.WarehouseBratislava:
		return s.Bratislava
	case constant.WarehouseRuzomberok:
		return s.Ruzomberok
	case constant.WarehouseBezo:
		return s.Bezo
	}
	return 0
}

func (s *StockLevels) Set(w constant.Warehouse, v int64) {
	switch w {
	case constant.WarehouseBratislava:
		s.Bratislava = v
	case constant.WarehouseRuzomberok:
		s.Ruzomberok = v
	case constant.WarehouseBezo:
		s.Bezo = v
	}
}

// StockCheck is what the availability check reads for one product.
type StockCheck struct {
	ProductID uint64 `db:"id"`
	Name      string `db:"name"`
	StockLevels
	ReservedQuantity int64 `db:"reserved_quantity"`
}

func (c StockCheck) Available() int64 {
	a := c.Total() - c.ReservedQuantity
	if a < 0 {
		return 0
	}
	return a
}

// ReservedProduct is a row of the reserved-products overview.
type ReservedProduct struct {
	ProductID        uint64          `db:"product_id" json:"product_id"`
	ReservedQuantity int64           `db:"reserved_quantity" json:"reserved_quantity"`
	Name             string          `db:"name" json:"name"`
	Price            decimal.Decimal `db:"price" json:"price"`
	ImageURL         *string         `db:"image_url" json:"image_url,omitempty"`
	StockLevels
	AvailableStock int64 `db:"-" json:"available_stock"`
}

// StockAdjustmentRequest adds or removes stock by hand. Without a warehouse
// the quantity is spread over all warehouses in their fixed order.
type StockAdjustmentRequest struct {
	Quantity  int64              `json:"quantity" validate:"required,gt=0"`
	Warehouse constant.Warehouse `json:"warehouse"`
}

type StockAdjustmentResult struct {
	ProductID uint64      `json:"product_id"`
	Levels    StockLevels `json:"levels"`
	// Unapplied is the part of the quantity that did not fit.
	Unapplied int64 `json:"unapplied"`
}
