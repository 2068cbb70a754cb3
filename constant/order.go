package constant

type OrderStatus string

const (
	OrderStatusNew                 OrderStatus = "new"
	OrderStatusWaitingPayment      OrderStatus = "waiting_payment"
	OrderStatusPaidWaitingShipment OrderStatus = "paid_waiting_shipment"
	OrderStatusShipped             OrderStatus = "shipped"
	OrderStatusDelivered           OrderStatus = "delivered"
	OrderStatusCancelled           OrderStatus = "cancelled"
)

var orderStatuses = map[OrderStatus]bool{
	OrderStatusNew:                 true,
	OrderStatusWaitingPayment:      true,
	OrderStatusPaidWaitingShipment: true,
	OrderStatusShipped:             true,
	OrderStatusDelivered:           true,
	OrderStatusCancelled:           true,
}

func (s OrderStatus) Valid() bool {
	return orderStatuses[s]
}

// Fulfills reports whether entering this status takes stock out of a warehouse.
func (s OrderStatus) Fulfills() bool {
	return s == OrderStatusShipped || s == OrderStatusDelivered
}

type DeliveryMethod string

const (
	DeliveryMethodPersonal DeliveryMethod = "personal"
	DeliveryMethodPost     DeliveryMethod = "post"
	DeliveryMethodPacketa  DeliveryMethod = "packeta"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryMethodPersonal || m == DeliveryMethodPost || m == DeliveryMethodPacketa
}

const (
	PickupAddress = "Ľudové námestie 503/34, 831 03 Bratislava, Slovakia"
	PickupCity    = "Bratislava"
	PickupZipCode = "831 03"
	PickupCountry = "Slovensko"
)

// Order submission limits.
const (
	MaxCartItems          = 50
	MaxOrderQuantity      = 1000
	MaxOrderValue         = 10000
	MaxRecentOrders       = 3
	OrderNotesMaxLength   = 1000
	DefaultItemWeightGram = 100
)
