package validation

import "github.com/mesh-intelligence/backoffice/pkg/types"

// Services returns the service validator.
func Services() *Validator {
	return New("service",
		Field(types.ServiceName, EditValidate,
			Required("name is required"),
			MaxLength(80, "name must have at most 80 characters"),
			Unique(types.ServiceName, "a service with this name already exists")),
		Field(types.ServiceDescription, EditValidate,
			MaxLength(500, "description must have at most 500 characters")),
		Field(types.ServicePrice, EditValidate,
			Required("price is required"),
			PositiveNumber("price must be a number greater than zero")),
		Field(types.ServiceDuration, EditValidate,
			Required("duration is required"),
			IntAtLeast(1, "duration must be a whole number of minutes, at least 1")),
		Field(types.ServiceStatus, EditValidate,
			Required("status is required"),
			OneOf(types.Statuses, "status must be active or inactive")),
	)
}
