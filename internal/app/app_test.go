package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/backoffice/internal/confirm"
	"github.com/mesh-intelligence/backoffice/internal/crud"
	"github.com/mesh-intelligence/backoffice/internal/export"
	"github.com/mesh-intelligence/backoffice/internal/notify"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func setupSession(t *testing.T) (*Session, *notify.Recorder) {
	t.Helper()
	rec := notify.NewRecorder()
	s, err := NewSession(Options{
		Config:    types.DefaultConfig(),
		Notifier:  rec,
		Confirmer: confirm.Yes(rec),
	})
	require.NoError(t, err)
	return s, rec
}

func TestSessionPages(t *testing.T) {
	s, _ := setupSession(t)

	assert.Equal(t, []string{PageUsers, PageProducts, PageRoles, PagePurchaseOrders, PageServices}, s.PageNames())

	tests := []struct {
		name string
		want string
	}{
		{"users", PageUsers},
		{"User", PageUsers},
		{" po ", PagePurchaseOrders},
		{"purchase_orders", PagePurchaseOrders},
		{"service", PageServices},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := s.Page(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name())
		})
	}

	_, err := s.Page("warehouses")
	assert.ErrorIs(t, err, types.ErrUnknownEntity)
}

func TestPageCreateUpdateDelete(t *testing.T) {
	s, rec := setupSession(t)
	p, err := s.Page("products")
	require.NoError(t, err)
	before := s.Products.Len()

	id, err := p.Create(types.Values{
		types.ProductName:     "Lámpara de mesa",
		types.ProductPrice:    "45000",
		types.ProductStock:    "3",
		types.ProductCategory: "Hogar",
		types.ProductStatus:   types.StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(before+1), id)
	assert.Equal(t, crud.UIClosed, p.UI().Mode)

	require.NoError(t, p.Update(id, types.Values{types.ProductStock: "0"}))
	got, err := s.Products.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, "Lámpara de mesa", got.Name)

	err = p.Update(id, types.Values{types.ProductPrice: "-1"})
	var verr *crud.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price must be a number greater than zero", verr.Field(types.ProductPrice))
	assert.Equal(t, crud.UIState{Mode: crud.UIEditing, ID: id}, p.UI())

	ok, err := p.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, before, s.Products.Len())

	last, _ := rec.Last()
	assert.Equal(t, "Product deleted successfully", last.Message)
}

func TestUserRoleMustBeActive(t *testing.T) {
	s, _ := setupSession(t)
	p, err := s.Page("users")
	require.NoError(t, err)

	draft := types.Values{
		types.UserDocumentType:    types.DocumentCC,
		types.UserDocumentNumber:  "52111222",
		types.UserFirstName:       "Diana",
		types.UserLastName:        "Castro",
		types.UserPhone:           "3201112233",
		types.UserEmail:           "diana@backoffice.co",
		types.UserRole:            "Auditor",
		types.UserStatus:          types.StatusActive,
		types.UserPassword:        "secret1",
		types.UserConfirmPassword: "secret1",
	}
	_, err = p.Create(draft)
	var verr *crud.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role does not exist or is inactive", verr.Field(types.UserRole))

	// Activating the role makes it assignable.
	roles, err := s.Page("roles")
	require.NoError(t, err)
	auditor, ok := findRole(s, "Auditor")
	require.True(t, ok)
	require.NoError(t, roles.Do(ActionToggleStatus, auditor.ID))
	assert.Contains(t, s.ActiveRoles(), "Auditor")

	id, err := p.Create(draft)
	require.NoError(t, err)
	u, err := s.Users.Get(id)
	require.NoError(t, err)
	assert.NoError(t, u.CheckPassword("secret1"))
}

func findRole(s *Session, name string) (types.Role, bool) {
	for _, r := range s.Roles.Items() {
		if r.Name == name {
			return r, true
		}
	}
	return types.Role{}, false
}

func TestPurchaseOrderActions(t *testing.T) {
	s, _ := setupSession(t)
	p, err := s.Page("po")
	require.NoError(t, err)
	assert.Equal(t, []string{ActionReceive, ActionCancel}, p.Actions())

	var pendingID, receivedID int64
	for _, po := range s.PurchaseOrders.Items() {
		switch po.Status {
		case types.PurchaseOrderPending:
			pendingID = po.ID
		case types.PurchaseOrderReceived:
			receivedID = po.ID
		}
	}
	require.NotZero(t, pendingID)
	require.NotZero(t, receivedID)

	require.NoError(t, p.Do(ActionReceive, pendingID))
	po, err := s.PurchaseOrders.Get(pendingID)
	require.NoError(t, err)
	assert.Equal(t, types.PurchaseOrderReceived, po.Status)

	assert.ErrorIs(t, p.Do(ActionCancel, receivedID), types.ErrInvalidTransition)
	assert.ErrorIs(t, p.Do("ship", pendingID), ErrUnknownAction)
	assert.ErrorIs(t, p.Do(ActionReceive, 999), types.ErrNotFound)

	// The order number is fixed once the order exists.
	err = p.Update(pendingID, types.Values{types.PurchaseOrderNumber: "OC-9999"})
	var verr *crud.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cannot be changed after creation", verr.Field(types.PurchaseOrderNumber))
}

func TestRenderAndShow(t *testing.T) {
	s, _ := setupSession(t)
	p, err := s.Page("products")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf, ListOptions{Query: "bebidas", PageSize: 2}))
	out := buf.String()
	assert.Contains(t, out, "Page 1 of 2 (3 results)")
	assert.Contains(t, out, ActionToggleStatus)

	buf.Reset()
	require.NoError(t, p.Render(&buf, ListOptions{Query: "no such thing"}))
	assert.Contains(t, buf.String(), "No results")

	buf.Reset()
	require.NoError(t, p.Show(&buf, 1))
	assert.Contains(t, buf.String(), "category")
	assert.Equal(t, crud.UIState{Mode: crud.UIViewing, ID: 1}, p.UI())

	assert.ErrorIs(t, p.Show(&buf, 999), types.ErrNotFound)
}

func TestDatasetOmitsPasswords(t *testing.T) {
	s, _ := setupSession(t)
	p, err := s.Page("users")
	require.NoError(t, err)

	ds := p.Dataset()
	assert.Equal(t, PageUsers, ds.Name)
	assert.Equal(t, "id", ds.Columns[0])
	assert.NotContains(t, ds.Columns, types.UserPassword)
	assert.NotContains(t, ds.Columns, types.UserConfirmPassword)
	assert.Len(t, ds.Rows, s.Users.Len())
	for _, row := range ds.Rows {
		assert.Len(t, row, len(ds.Columns))
	}
}

func TestSessionExport(t *testing.T) {
	s, _ := setupSession(t)
	dir := t.TempDir()

	paths, err := s.Export(context.Background(), dir, export.FormatJSONL)
	require.NoError(t, err)
	assert.Len(t, paths, len(s.Pages()))
	for _, path := range paths {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}
	assert.FileExists(t, filepath.Join(dir, PagePurchaseOrders+".jsonl"))
}

func TestCatalog(t *testing.T) {
	products := []types.Product{
		{ID: 1, Name: "Café especial", Category: "Bebidas", Price: 32000, Stock: 4, Status: types.StatusActive},
		{ID: 2, Name: "Queso", Category: "Lácteos", Price: 21000, Stock: 0, Status: types.StatusInactive},
		{ID: 3, Name: "Panela", Category: "Despensa", Price: 4500, Stock: 0, Status: types.StatusActive},
	}
	services := []types.Service{
		{ID: 1, Name: "Catación de café", Price: 45000, DurationMinutes: 90, Status: types.StatusActive},
		{ID: 2, Name: "Domicilio", Price: 8000, DurationMinutes: 30, Status: types.StatusInactive},
	}

	items := Catalog(products, services)
	require.Len(t, items, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, KindService, items[2].Kind)
	assert.Equal(t, "out of stock", items[1].Detail)

	table := CatalogTable(items, 10)
	table.SetQuery("CAFE")
	got := table.Filtered()
	require.Len(t, got, 2)
	assert.Equal(t, "Café especial", got[0].Name)
	assert.Equal(t, "Catación de café", got[1].Name)

	var buf bytes.Buffer
	RenderCatalog(&buf, items, ListOptions{Query: "panela"})
	assert.Contains(t, buf.String(), "Panela")
	assert.NotContains(t, buf.String(), "Queso")
}

func TestFoldAndMoney(t *testing.T) {
	assert.Equal(t, "cafe con azucar", Fold("Café con Azúcar"))
	assert.Equal(t, "nino", Fold("Niño"))
	assert.Contains(t, Money(32000), "32")
	assert.Contains(t, Money(32000), "$")
}
