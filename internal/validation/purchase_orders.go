package validation

import (
	"regexp"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

var orderNumberRe = regexp.MustCompile(`(?i)^OC-\d{4,}$`)

// PurchaseOrders returns the purchase order validator. The order number is
// locked once the order exists.
func PurchaseOrders() *Validator {
	return New("purchase order",
		Field(types.PurchaseOrderNumber, EditLocked,
			Required("order number is required"),
			Pattern(orderNumberRe, "order number must look like OC-0001"),
			Unique(types.PurchaseOrderNumber, "order number is already registered")),
		Field(types.PurchaseOrderSupplier, EditValidate,
			Required("supplier is required"),
			MaxLength(80, "supplier must have at most 80 characters")),
		Field(types.PurchaseOrderUnitPrice, EditValidate,
			Required("unit price is required"),
			PositiveNumber("unit price must be a number greater than zero")),
		Field(types.PurchaseOrderQuantity, EditValidate,
			Required("quantity is required"),
			IntAtLeast(1, "quantity must be a whole number of at least 1")),
		Field(types.PurchaseOrderDate, EditValidate,
			Required("date is required"),
			Date("date must use the YYYY-MM-DD format")),
		Field(types.PurchaseOrderStatus, EditValidate,
			Required("status is required"),
			OneOf(types.PurchaseOrderStatuses, "status must be pending, received or cancelled")),
	)
}
