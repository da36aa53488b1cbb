package app

import (
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/mesh-intelligence/backoffice/internal/listing"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Catalog entry kinds.
const (
	KindProduct = "product"
	KindService = "service"
)

// CatalogItem is one entry of the public storefront: an active product or
// service. Its id is unique within the catalog, not across entities.
type CatalogItem struct {
	ID       int64   `json:"id"`
	Kind     string  `json:"kind"`
	SourceID int64   `json:"source_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Detail   string  `json:"detail"`
}

func (c CatalogItem) GetID() int64 { return c.ID }

func (c CatalogItem) Field(key string) (any, bool) {
	switch key {
	case "id":
		return c.ID, true
	case "kind":
		return c.Kind, true
	case "name":
		return c.Name, true
	case "category":
		return c.Category, true
	case "price":
		return c.Price, true
	case "detail":
		return c.Detail, true
	default:
		return nil, false
	}
}

// Catalog builds the storefront listing from the active products and
// services. Products come first, each group in its original order.
func Catalog(products []types.Product, services []types.Service) []CatalogItem {
	var out []CatalogItem
	for _, p := range products {
		if p.Status != types.StatusActive {
			continue
		}
		detail := "out of stock"
		if p.InStock() {
			detail = fmt.Sprintf("%d available", p.Stock)
		}
		out = append(out, CatalogItem{Kind: KindProduct, SourceID: p.ID, Name: p.Name, Category: p.Category, Price: p.Price, Detail: detail})
	}
	for _, s := range services {
		if s.Status != types.StatusActive {
			continue
		}
		out = append(out, CatalogItem{Kind: KindService, SourceID: s.ID, Name: s.Name, Category: "Servicios", Price: s.Price, Detail: fmt.Sprintf("%d min", s.DurationMinutes)})
	}
	return lo.Map(out, func(c CatalogItem, i int) CatalogItem {
		c.ID = int64(i + 1)
		return c
	})
}

// CatalogTable returns the read-only storefront table. Search ignores
// accents, so "cafe" finds "Café".
func CatalogTable(items []CatalogItem, pageSize int) *listing.Table[CatalogItem] {
	return listing.New(listing.Config[CatalogItem]{
		Columns: []listing.Column[CatalogItem]{
			{Key: "name", Header: "Name"},
			{Key: "category", Header: "Category"},
			{Key: "price", Header: "Price", Render: func(c CatalogItem) string { return Money(c.Price) }},
			{Key: "detail", Header: ""},
		},
		PageSize:       pageSize,
		SearchableKeys: []string{"name", "category", "kind"},
		Normalize:      Fold,
	}, items)
}

// RenderCatalog draws the storefront page selected by opts.
func RenderCatalog(w io.Writer, items []CatalogItem, opts ListOptions) {
	t := CatalogTable(items, opts.PageSize)
	t.SetQuery(opts.Query)
	if opts.Page > 0 {
		t.SetPage(opts.Page)
	}
	t.Render(w)
}
