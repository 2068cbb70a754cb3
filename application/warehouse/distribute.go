package warehouse

import (
	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
)

// DistributeRestore adds qty to levels filling the warehouses in their fixed
// order, each up to LegacyWarehouseCapacity. It returns the new levels and the
// quantity that did not fit anywhere.
func DistributeRestore(levels model.StockLevels, qty int64) (model.StockLevels, int64) {
	for _, w := range constant.Warehouses {
		if qty <= 0 {
			break
		}
		space := constant.LegacyWarehouseCapacity - levels.Get(w)
		if space <= 0 {
			continue
		}
		add := min(space, qty)
		levels.Set(w, levels.Get(w)+add)
		qty -= add
	}
	return levels, qty
}

// DistributeDecrement takes qty out of levels draining the warehouses in their
// fixed order. It returns the new levels and the quantity that was not in stock.
func DistributeDecrement(levels model.StockLevels, qty int64) (model.StockLevels, int64) {
	for _, w := range constant.Warehouses {
		if qty <= 0 {
			break
		}
		have := levels.Get(w)
		if have <= 0 {
			continue
		}
		take := min(have, qty)
		levels.Set(w, have-take)
		qty -= take
	}
	return levels, qty
}
