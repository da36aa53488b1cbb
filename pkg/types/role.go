package types

import (
	"slices"
	"strings"
)

// Permission codes a role may grant.
const (
	PermDashboardRead       = "dashboard.read"
	PermUsersRead           = "users.read"
	PermUsersWrite          = "users.write"
	PermRolesRead           = "roles.read"
	PermRolesWrite          = "roles.write"
	PermProductsRead        = "products.read"
	PermProductsWrite       = "products.write"
	PermServicesRead        = "services.read"
	PermServicesWrite       = "services.write"
	PermPurchaseOrdersRead  = "purchase_orders.read"
	PermPurchaseOrdersWrite = "purchase_orders.write"
	PermOrdersRead          = "orders.read"
	PermOrdersWrite         = "orders.write"
)

// Permissions lists every known permission code.
var Permissions = []string{
	PermDashboardRead,
	PermUsersRead,
	PermUsersWrite,
	PermRolesRead,
	PermRolesWrite,
	PermProductsRead,
	PermProductsWrite,
	PermServicesRead,
	PermServicesWrite,
	PermPurchaseOrdersRead,
	PermPurchaseOrdersWrite,
	PermOrdersRead,
	PermOrdersWrite,
}

// IsKnownPermission reports whether code is one of Permissions.
func IsKnownPermission(code string) bool {
	return slices.Contains(Permissions, code)
}

// Role field keys.
const (
	RoleName        = "name"
	RoleStatus      = "status"
	RolePermissions = "permissions"
)

// Role groups a set of permissions under a name.
type Role struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Permissions []string `json:"permissions"`
}

func (r Role) GetID() int64 { return r.ID }

func (r Role) WithID(id int64) Role {
	r.ID = id
	r.Permissions = slices.Clone(r.Permissions)
	return r
}

// Grants reports whether the role carries permission code.
func (r Role) Grants(code string) bool {
	return slices.Contains(r.Permissions, code)
}

func (r Role) Field(key string) (any, bool) {
	switch key {
	case "id":
		return r.ID, true
	case RoleName:
		return r.Name, true
	case RoleStatus:
		return r.Status, true
	case RolePermissions:
		return JoinList(r.Permissions), true
	default:
		return nil, false
	}
}

func (r Role) Values() Values {
	return Values{
		RoleName:        r.Name,
		RoleStatus:      r.Status,
		RolePermissions: JoinList(r.Permissions),
	}
}

// Apply returns a copy of r with every field present in v overwritten.
// Permissions are deduplicated and kept in input order.
func (r Role) Apply(v Values) (Role, error) {
	r.Permissions = slices.Clone(r.Permissions)
	for key, val := range v {
		switch key {
		case RoleName:
			r.Name = strings.TrimSpace(val)
		case RoleStatus:
			r.Status = strings.TrimSpace(val)
		case RolePermissions:
			perms := SplitList(val)
			seen := make(map[string]bool, len(perms))
			r.Permissions = r.Permissions[:0]
			for _, p := range perms {
				if !seen[p] {
					seen[p] = true
					r.Permissions = append(r.Permissions, p)
				}
			}
		}
	}
	return r, nil
}
