package types

import "strings"

// Purchase order statuses. A purchase order starts pending and ends either
// received or cancelled.
const (
	PurchaseOrderPending   = "pending"
	PurchaseOrderReceived  = "received"
	PurchaseOrderCancelled = "cancelled"
)

// PurchaseOrderStatuses lists the accepted purchase order statuses.
var PurchaseOrderStatuses = []string{PurchaseOrderPending, PurchaseOrderReceived, PurchaseOrderCancelled}

// DateLayout is the form layout of purchase order dates.
const DateLayout = "2006-01-02"

// Purchase order field keys.
const (
	PurchaseOrderNumber    = "order_number"
	PurchaseOrderSupplier  = "supplier"
	PurchaseOrderUnitPrice = "unit_price"
	PurchaseOrderQuantity  = "quantity"
	PurchaseOrderDate      = "date"
	PurchaseOrderStatus    = "status"
	PurchaseOrderTotal     = "total"
)

// PurchaseOrder is a supplier order for a single line of goods.
type PurchaseOrder struct {
	ID          int64   `json:"id"`
	OrderNumber string  `json:"order_number"`
	Supplier    string  `json:"supplier"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
}

func (p PurchaseOrder) GetID() int64 { return p.ID }

func (p PurchaseOrder) WithID(id int64) PurchaseOrder {
	p.ID = id
	return p
}

// Total is unit price times quantity.
func (p PurchaseOrder) Total() float64 {
	return p.UnitPrice * float64(p.Quantity)
}

// Receive marks a pending order as received.
// Returns ErrInvalidTransition from any other status.
func (p PurchaseOrder) Receive() (PurchaseOrder, error) {
	if p.Status != PurchaseOrderPending {
		return p, ErrInvalidTransition
	}
	p.Status = PurchaseOrderReceived
	return p, nil
}

// Cancel marks a pending order as cancelled.
// Returns ErrInvalidTransition from any other status.
func (p PurchaseOrder) Cancel() (PurchaseOrder, error) {
	if p.Status != PurchaseOrderPending {
		return p, ErrInvalidTransition
	}
	p.Status = PurchaseOrderCancelled
	return p, nil
}

func (p PurchaseOrder) Field(key string) (any, bool) {
	switch key {
	case "id":
		return p.ID, true
	case PurchaseOrderNumber:
		return p.OrderNumber, true
	case PurchaseOrderSupplier:
		return p.Supplier, true
	case PurchaseOrderUnitPrice:
		return p.UnitPrice, true
	case PurchaseOrderQuantity:
		return p.Quantity, true
	case PurchaseOrderDate:
		return p.Date, true
	case PurchaseOrderStatus:
		return p.Status, true
	case PurchaseOrderTotal:
		return p.Total(), true
	default:
		return nil, false
	}
}

func (p PurchaseOrder) Values() Values {
	return Values{
		PurchaseOrderNumber:    p.OrderNumber,
		PurchaseOrderSupplier:  p.Supplier,
		PurchaseOrderUnitPrice: formatFloat(p.UnitPrice),
		PurchaseOrderQuantity:  formatInt(p.Quantity),
		PurchaseOrderDate:      p.Date,
		PurchaseOrderStatus:    p.Status,
	}
}

// Apply returns a copy of p with every field present in v overwritten.
func (p PurchaseOrder) Apply(v Values) (PurchaseOrder, error) {
	for key, val := range v {
		var err error
		switch key {
		case PurchaseOrderNumber:
			p.OrderNumber = strings.ToUpper(strings.TrimSpace(val))
		case PurchaseOrderSupplier:
			p.Supplier = strings.TrimSpace(val)
		case PurchaseOrderUnitPrice:
			p.UnitPrice, err = parseFloat(key, val)
		case PurchaseOrderQuantity:
			p.Quantity, err = parseInt(key, val)
		case PurchaseOrderDate:
			p.Date = strings.TrimSpace(val)
		case PurchaseOrderStatus:
			p.Status = strings.TrimSpace(val)
		}
		if err != nil {
			return PurchaseOrder{}, err
		}
	}
	return p, nil
}
