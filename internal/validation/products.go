package validation

import "github.com/mesh-intelligence/backoffice/pkg/types"

// Products returns the product validator.
func Products() *Validator {
	return New("product",
		Field(types.ProductName, EditValidate,
			Required("name is required"),
			MaxLength(80, "name must have at most 80 characters"),
			Unique(types.ProductName, "a product with this name already exists")),
		Field(types.ProductPrice, EditValidate,
			Required("price is required"),
			PositiveNumber("price must be a number greater than zero")),
		Field(types.ProductStock, EditValidate,
			Required("stock is required"),
			IntAtLeast(0, "stock must be a whole number of zero or more")),
		Field(types.ProductCategory, EditValidate,
			Required("category is required")),
		Field(types.ProductImage, EditValidate,
			URL("image must be an absolute URL")),
		Field(types.ProductStatus, EditValidate,
			Required("status is required"),
			OneOf(types.Statuses, "status must be active or inactive")),
	)
}
