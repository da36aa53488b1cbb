package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/backoffice/internal/form"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func validUser() types.Values {
	return types.Values{
		types.UserDocumentType:    types.DocumentCC,
		types.UserDocumentNumber:  "1020304050",
		types.UserFirstName:       "Ana María",
		types.UserLastName:        "Gómez",
		types.UserPhone:           "3001234567",
		types.UserEmail:           "ana@example.com",
		types.UserRole:            "Admin",
		types.UserStatus:          types.StatusActive,
		types.UserPassword:        "secret1",
		types.UserConfirmPassword: "secret1",
	}
}

func TestUsersValidateField(t *testing.T) {
	v := Users(nil)
	create := Context{Mode: form.ModeCreate}

	tests := []struct {
		name  string
		field string
		patch types.Values
		want  string
	}{
		{"valid document", types.UserDocumentNumber, nil, ""},
		{"blank first name", types.UserFirstName, types.Values{types.UserFirstName: "  "}, "first name is required"},
		{"digits in name", types.UserFirstName, types.Values{types.UserFirstName: "Ana2"}, "first name may only contain letters"},
		{"phone with letters", types.UserPhone, types.Values{types.UserPhone: "300123456a"}, "phone may only contain digits"},
		{"short phone", types.UserPhone, types.Values{types.UserPhone: "300123"}, "phone must have exactly 10 digits"},
		{"bad email", types.UserEmail, types.Values{types.UserEmail: "ana@"}, "email is not a valid address"},
		{"short password", types.UserPassword, types.Values{types.UserPassword: "abc", types.UserConfirmPassword: "abc"}, "password must have at least 6 characters"},
		{"confirmation mismatch", types.UserConfirmPassword, types.Values{types.UserConfirmPassword: "secret2"}, "passwords do not match"},
		{"unknown document type", types.UserDocumentType, types.Values{types.UserDocumentType: "NIT"}, "document type must be one of CC, TI, CE, PPT, Pasaporte"},
		{"TI needs 10 digits", types.UserDocumentNumber, types.Values{types.UserDocumentType: types.DocumentTI, types.UserDocumentNumber: "123456"}, "TI must have 10 or 11 digits"},
		{"passport allows letters", types.UserDocumentNumber, types.Values{types.UserDocumentType: types.DocumentPassport, types.UserDocumentNumber: "AB12345"}, ""},
		{"CC rejects letters", types.UserDocumentNumber, types.Values{types.UserDocumentNumber: "AB12345"}, "CC must have 6 to 10 digits"},
		{"document number is trimmed", types.UserDocumentNumber, types.Values{types.UserDocumentNumber: " 1023456789 "}, ""},
		{"bad status", types.UserStatus, types.Values{types.UserStatus: "blocked"}, "status must be active or inactive"},
		{"unknown field", "nickname", nil, "unknown field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validUser().Merge(tt.patch)
			got := v.ValidateField(tt.field, draft[tt.field], draft, create)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUsersUniqueness(t *testing.T) {
	v := Users(nil)
	ctx := Context{
		Mode: form.ModeCreate,
		Taken: func(field, value string) bool {
			return field == types.UserEmail && value == "taken@example.com"
		},
	}

	draft := validUser().Merge(types.Values{types.UserEmail: "taken@example.com"})
	errs := v.ValidateAll(draft, ctx)

	assert.Equal(t, "email is already registered", errs[types.UserEmail])
	assert.Equal(t, []string{types.UserEmail}, errs.Fields(v.Fields()))
}

func TestUsersRoleMustExist(t *testing.T) {
	v := Users(func() []string { return []string{"Admin", "Seller"} })
	draft := validUser().Merge(types.Values{types.UserRole: "Auditor"})

	assert.Equal(t, "role does not exist or is inactive",
		v.ValidateField(types.UserRole, draft[types.UserRole], draft, Context{}))
	assert.Empty(t, v.ValidateField(types.UserRole, "seller", draft, Context{}), "role match ignores case")
}

func TestUsersEditPasswordPolicy(t *testing.T) {
	v := Users(nil)
	edit := Context{Mode: form.ModeEdit, ID: 1}

	draft := validUser()
	delete(draft, types.UserPassword)
	delete(draft, types.UserConfirmPassword)
	assert.False(t, v.ValidateAll(draft, edit).HasErrors(), "blank passwords keep the stored one")

	draft[types.UserPassword] = "newpass"
	errs := v.ValidateAll(draft, edit)
	assert.Equal(t, "password confirmation is required", errs[types.UserConfirmPassword])

	create := v.ValidateAll(func() types.Values {
		d := validUser()
		delete(d, types.UserPassword)
		delete(d, types.UserConfirmPassword)
		return d
	}(), Context{Mode: form.ModeCreate})
	assert.Equal(t, "password is required", create[types.UserPassword])
}

func TestPurchaseOrderNumberLockedOnEdit(t *testing.T) {
	v := PurchaseOrders()
	original := types.Values{
		types.PurchaseOrderNumber:    "OC-0001",
		types.PurchaseOrderSupplier:  "Acme",
		types.PurchaseOrderUnitPrice: "10",
		types.PurchaseOrderQuantity:  "2",
		types.PurchaseOrderDate:      "2024-03-01",
		types.PurchaseOrderStatus:    types.PurchaseOrderPending,
	}
	edit := Context{Mode: form.ModeEdit, ID: 1, Original: original}

	assert.False(t, v.ValidateAll(original, edit).HasErrors())

	resubmitted := original.Merge(types.Values{types.PurchaseOrderNumber: " oc-0001"})
	assert.Empty(t, v.ValidateAll(resubmitted, edit)[types.PurchaseOrderNumber], "same number in another case is unchanged")

	changed := original.Merge(types.Values{types.PurchaseOrderNumber: "OC-0002"})
	assert.Equal(t, "cannot be changed after creation", v.ValidateAll(changed, edit)[types.PurchaseOrderNumber])

	assert.Empty(t, v.ValidateAll(changed, Context{Mode: form.ModeCreate})[types.PurchaseOrderNumber])
}

func TestPurchaseOrderFormats(t *testing.T) {
	v := PurchaseOrders()
	draft := types.Values{
		types.PurchaseOrderNumber:    "PO-1",
		types.PurchaseOrderSupplier:  "",
		types.PurchaseOrderUnitPrice: "-3",
		types.PurchaseOrderQuantity:  "0",
		types.PurchaseOrderDate:      "01/03/2024",
		types.PurchaseOrderStatus:    "lost",
	}
	errs := v.ValidateAll(draft, Context{})

	assert.Equal(t, "order number must look like OC-0001", errs[types.PurchaseOrderNumber])
	assert.Equal(t, "supplier is required", errs[types.PurchaseOrderSupplier])
	assert.Equal(t, "unit price must be a number greater than zero", errs[types.PurchaseOrderUnitPrice])
	assert.Equal(t, "quantity must be a whole number of at least 1", errs[types.PurchaseOrderQuantity])
	assert.Equal(t, "date must use the YYYY-MM-DD format", errs[types.PurchaseOrderDate])
	assert.Equal(t, "status must be pending, received or cancelled", errs[types.PurchaseOrderStatus])
}

func TestProductsAndServices(t *testing.T) {
	p := Products().ValidateAll(types.Values{
		types.ProductName:     "Café",
		types.ProductPrice:    "0",
		types.ProductStock:    "-1",
		types.ProductCategory: "Bebidas",
		types.ProductImage:    "not a url",
		types.ProductStatus:   types.StatusActive,
	}, Context{})
	assert.Equal(t, "price must be a number greater than zero", p[types.ProductPrice])
	assert.Equal(t, "stock must be a whole number of zero or more", p[types.ProductStock])
	assert.Equal(t, "image must be an absolute URL", p[types.ProductImage])
	assert.Empty(t, p[types.ProductName])

	for _, price := range []string{"Inf", "+Infinity", "NaN", "1e400"} {
		errs := Products().ValidateAll(types.Values{types.ProductPrice: price}, Context{})
		assert.Equal(t, "price must be a number greater than zero", errs[types.ProductPrice], price)
	}

	s := Services().ValidateAll(types.Values{
		types.ServiceName:     "Corte",
		types.ServicePrice:    "25000",
		types.ServiceDuration: "1.5",
		types.ServiceStatus:   types.StatusActive,
	}, Context{})
	assert.Equal(t, "duration must be a whole number of minutes, at least 1", s[types.ServiceDuration])
	assert.Empty(t, s[types.ServiceDescription], "description is optional")
}

func TestRolesPermissions(t *testing.T) {
	v := Roles()
	errs := v.ValidateAll(types.Values{
		types.RoleName:        "Ad",
		types.RoleStatus:      types.StatusActive,
		types.RolePermissions: "users.read, users.fly",
	}, Context{})

	assert.Equal(t, "name must have 3 to 40 characters", errs[types.RoleName])
	assert.Equal(t, `unknown permission "users.fly"`, errs[types.RolePermissions])

	errs = v.ValidateAll(types.Values{types.RoleName: "Ventas", types.RoleStatus: types.StatusActive}, Context{})
	assert.Equal(t, "select at least one permission", errs[types.RolePermissions])
}

func TestCheckUpdatesFormState(t *testing.T) {
	s := form.New(form.ModeCreate, 0, types.Values{})
	Services().Check(s, Context{})

	assert.False(t, s.Valid())
	assert.Empty(t, s.Visible())
	s.TouchAll(Services().Fields())
	assert.Equal(t, "name is required", s.Visible()[types.ServiceName])
}
