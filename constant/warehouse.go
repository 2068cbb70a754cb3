package constant

type Warehouse string

const (
	WarehouseBratislava Warehouse = "bratislava"
	WarehouseRuzomberok Warehouse = "ruzomberok"
	WarehouseBezo       Warehouse = "bezo"
)

// Warehouses is the fixed fill/drain order used when no warehouse is named.
var Warehouses = []Warehouse{WarehouseBratislava, WarehouseRuzomberok, WarehouseBezo}

// LegacyWarehouseCapacity caps each warehouse when stock is returned without a known source.
const LegacyWarehouseCapacity = 1000

func (w Warehouse) Valid() bool {
	switch w {
	case WarehouseBratislava, WarehouseRuzomberok, WarehouseBezo:
		return true
	}
	return false
}

// StockColumn is the product column holding this warehouse's count.
// Callers must check Valid first; the value is interpolated into SQL.
func (w Warehouse) StockColumn() string {
	return "stock_" + string(w)
}
