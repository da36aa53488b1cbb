package app

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/backoffice/internal/crud"
	"github.com/mesh-intelligence/backoffice/internal/listing"
	"github.com/mesh-intelligence/backoffice/internal/validation"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Page names.
const (
	PageUsers          = "users"
	PageProducts       = "products"
	PageRoles          = "roles"
	PagePurchaseOrders = "purchase-orders"
	PageServices       = "services"
)

// Extra row actions.
const (
	ActionToggleStatus = "toggle-status"
	ActionReceive      = "receive"
	ActionCancel       = "cancel"
)

// toggle flips an entity between active and inactive.
func toggle[T types.Entity[T]](status func(T) string, field string) action[T] {
	return action[T]{
		name: ActionToggleStatus,
		patch: func(item T) (types.Values, error) {
			return types.Values{field: types.ToggleStatus(status(item))}, nil
		},
	}
}

func userSchema(roles func() []string) crud.Schema[types.User] {
	return crud.Schema[types.User]{
		Entity:    "user",
		Validator: validation.Users(roles),
		NaturalKeys: []crud.NaturalKey{
			{Field: types.UserDocumentNumber},
			{Field: types.UserPhone},
			{Field: types.UserEmail, Fold: true},
		},
		Decode: func(v types.Values, base types.User) (types.User, error) { return base.Apply(v) },
		Label:  types.User.FullName,
	}
}

func newUsersPage(store *crud.Store[types.User], pageSize int) *entityPage[types.User] {
	return &entityPage[types.User]{
		name:  PageUsers,
		store: store,
		columns: []listing.Column[types.User]{
			{Key: "id", Header: "ID"},
			{Key: types.UserName, Header: "Name"},
			{Key: types.UserDocumentNumber, Header: "Document", Render: func(u types.User) string {
				return u.DocumentType + " " + u.DocumentNumber
			}},
			{Key: types.UserEmail, Header: "Email"},
			{Key: types.UserPhone, Header: "Phone"},
			{Key: types.UserRole, Header: "Role"},
			{Key: types.UserStatus, Header: "Status", Render: func(u types.User) string { return Status(u.Status) }},
		},
		searchable: []string{types.UserName, types.UserDocumentNumber, types.UserEmail, types.UserRole},
		actions: []action[types.User]{
			toggle(func(u types.User) string { return u.Status }, types.UserStatus),
		},
		pageSize: pageSize,
	}
}

func productSchema() crud.Schema[types.Product] {
	return crud.Schema[types.Product]{
		Entity:      "product",
		Validator:   validation.Products(),
		NaturalKeys: []crud.NaturalKey{{Field: types.ProductName, Fold: true}},
		Decode:      func(v types.Values, base types.Product) (types.Product, error) { return base.Apply(v) },
		Label:       func(p types.Product) string { return p.Name },
	}
}

func newProductsPage(store *crud.Store[types.Product], pageSize int) *entityPage[types.Product] {
	return &entityPage[types.Product]{
		name:  PageProducts,
		store: store,
		columns: []listing.Column[types.Product]{
			{Key: "id", Header: "ID"},
			{Key: types.ProductName, Header: "Name"},
			{Key: types.ProductCategory, Header: "Category"},
			{Key: types.ProductPrice, Header: "Price", Render: func(p types.Product) string { return Money(p.Price) }},
			{Key: types.ProductStock, Header: "Stock", Render: func(p types.Product) string {
				if !p.InStock() {
					return badStyle.Render("out of stock")
				}
				return fmt.Sprint(p.Stock)
			}},
			{Key: types.ProductStatus, Header: "Status", Render: func(p types.Product) string { return Status(p.Status) }},
		},
		searchable: []string{types.ProductName, types.ProductCategory},
		actions: []action[types.Product]{
			toggle(func(p types.Product) string { return p.Status }, types.ProductStatus),
		},
		pageSize: pageSize,
	}
}

func roleSchema() crud.Schema[types.Role] {
	return crud.Schema[types.Role]{
		Entity:      "role",
		Validator:   validation.Roles(),
		NaturalKeys: []crud.NaturalKey{{Field: types.RoleName, Fold: true}},
		Decode:      func(v types.Values, base types.Role) (types.Role, error) { return base.Apply(v) },
		Label:       func(r types.Role) string { return r.Name },
	}
}

func newRolesPage(store *crud.Store[types.Role], pageSize int) *entityPage[types.Role] {
	return &entityPage[types.Role]{
		name:  PageRoles,
		store: store,
		columns: []listing.Column[types.Role]{
			{Key: "id", Header: "ID"},
			{Key: types.RoleName, Header: "Name"},
			{Key: types.RolePermissions, Header: "Permissions", Render: func(r types.Role) string {
				return fmt.Sprintf("%d: %s", len(r.Permissions), strings.Join(r.Permissions, ", "))
			}},
			{Key: types.RoleStatus, Header: "Status", Render: func(r types.Role) string { return Status(r.Status) }},
		},
		searchable: []string{types.RoleName},
		actions: []action[types.Role]{
			toggle(func(r types.Role) string { return r.Status }, types.RoleStatus),
		},
		pageSize: pageSize,
	}
}

func purchaseOrderSchema() crud.Schema[types.PurchaseOrder] {
	return crud.Schema[types.PurchaseOrder]{
		Entity:      "purchase order",
		Validator:   validation.PurchaseOrders(),
		NaturalKeys: []crud.NaturalKey{{Field: types.PurchaseOrderNumber, Fold: true}},
		Decode: func(v types.Values, base types.PurchaseOrder) (types.PurchaseOrder, error) {
			return base.Apply(v)
		},
		Label: func(p types.PurchaseOrder) string { return p.OrderNumber },
	}
}

func pending(p types.PurchaseOrder) bool { return p.Status == types.PurchaseOrderPending }

func newPurchaseOrdersPage(store *crud.Store[types.PurchaseOrder], pageSize int) *entityPage[types.PurchaseOrder] {
	transition := func(next func(types.PurchaseOrder) (types.PurchaseOrder, error)) func(types.PurchaseOrder) (types.Values, error) {
		return func(p types.PurchaseOrder) (types.Values, error) {
			moved, err := next(p)
			if err != nil {
				return nil, fmt.Errorf("purchase order %s is %s: %w", p.OrderNumber, p.Status, err)
			}
			return types.Values{types.PurchaseOrderStatus: moved.Status}, nil
		}
	}
	return &entityPage[types.PurchaseOrder]{
		name:  PagePurchaseOrders,
		store: store,
		columns: []listing.Column[types.PurchaseOrder]{
			{Key: "id", Header: "ID"},
			{Key: types.PurchaseOrderNumber, Header: "Order"},
			{Key: types.PurchaseOrderSupplier, Header: "Supplier"},
			{Key: types.PurchaseOrderQuantity, Header: "Qty"},
			{Key: types.PurchaseOrderUnitPrice, Header: "Unit price", Render: func(p types.PurchaseOrder) string { return Money(p.UnitPrice) }},
			{Key: types.PurchaseOrderTotal, Header: "Total", Render: func(p types.PurchaseOrder) string { return Money(p.Total()) }},
			{Key: types.PurchaseOrderDate, Header: "Date"},
			{Key: types.PurchaseOrderStatus, Header: "Status", Render: func(p types.PurchaseOrder) string { return Status(p.Status) }},
		},
		searchable: []string{types.PurchaseOrderNumber, types.PurchaseOrderSupplier, types.PurchaseOrderStatus},
		actions: []action[types.PurchaseOrder]{
			{name: ActionReceive, applies: pending, patch: transition(types.PurchaseOrder.Receive)},
			{name: ActionCancel, applies: pending, patch: transition(types.PurchaseOrder.Cancel)},
		},
		pageSize: pageSize,
	}
}

func serviceSchema() crud.Schema[types.Service] {
	return crud.Schema[types.Service]{
		Entity:      "service",
		Validator:   validation.Services(),
		NaturalKeys: []crud.NaturalKey{{Field: types.ServiceName, Fold: true}},
		Decode:      func(v types.Values, base types.Service) (types.Service, error) { return base.Apply(v) },
		Label:       func(s types.Service) string { return s.Name },
	}
}

func newServicesPage(store *crud.Store[types.Service], pageSize int) *entityPage[types.Service] {
	return &entityPage[types.Service]{
		name:  PageServices,
		store: store,
		columns: []listing.Column[types.Service]{
			{Key: "id", Header: "ID"},
			{Key: types.ServiceName, Header: "Name"},
			{Key: types.ServicePrice, Header: "Price", Render: func(s types.Service) string { return Money(s.Price) }},
			{Key: types.ServiceDuration, Header: "Duration", Render: func(s types.Service) string {
				return fmt.Sprintf("%d min", s.DurationMinutes)
			}},
			{Key: types.ServiceStatus, Header: "Status", Render: func(s types.Service) string { return Status(s.Status) }},
		},
		searchable: []string{types.ServiceName, types.ServiceDescription},
		actions: []action[types.Service]{
			toggle(func(s types.Service) string { return s.Status }, types.ServiceStatus),
		},
		pageSize: pageSize,
	}
}
