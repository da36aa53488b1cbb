package validation

import "github.com/mesh-intelligence/backoffice/pkg/types"

// Roles returns the role validator.
func Roles() *Validator {
	return New("role",
		Field(types.RoleName, EditValidate,
			Required("name is required"),
			LengthBetween(3, 40, "name must have 3 to 40 characters"),
			Letters("name may only contain letters"),
			Unique(types.RoleName, "a role with this name already exists")),
		Field(types.RoleStatus, EditValidate,
			Required("status is required"),
			OneOf(types.Statuses, "status must be active or inactive")),
		Field(types.RolePermissions, EditValidate,
			ListNotEmpty("select at least one permission"),
			ListOf(types.IsKnownPermission, "unknown permission %q")),
	)
}
