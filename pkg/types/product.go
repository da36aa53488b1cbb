package types

import "strings"

// Product field keys.
const (
	ProductName     = "name"
	ProductPrice    = "price"
	ProductStock    = "stock"
	ProductCategory = "category"
	ProductImage    = "image"
	ProductStatus   = "status"
)

// Product is an item sold in the storefront.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Category string  `json:"category"`
	Image    string  `json:"image,omitempty"`
	Status   string  `json:"status"`
}

func (p Product) GetID() int64 { return p.ID }

func (p Product) WithID(id int64) Product {
	p.ID = id
	return p
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool { return p.Stock > 0 }

func (p Product) Field(key string) (any, bool) {
	switch key {
	case "id":
		return p.ID, true
	case ProductName:
		return p.Name, true
	case ProductPrice:
		return p.Price, true
	case ProductStock:
		return p.Stock, true
	case ProductCategory:
		return p.Category, true
	case ProductImage:
		return p.Image, true
	case ProductStatus:
		return p.Status, true
	default:
		return nil, false
	}
}

func (p Product) Values() Values {
	return Values{
		ProductName:     p.Name,
		ProductPrice:    formatFloat(p.Price),
		ProductStock:    formatInt(p.Stock),
		ProductCategory: p.Category,
		ProductImage:    p.Image,
		ProductStatus:   p.Status,
	}
}

// Apply returns a copy of p with every field present in v overwritten.
func (p Product) Apply(v Values) (Product, error) {
	for key, val := range v {
		var err error
		switch key {
		case ProductName:
			p.Name = strings.TrimSpace(val)
		case ProductPrice:
			p.Price, err = parseFloat(key, val)
		case ProductStock:
			p.Stock, err = parseInt(key, val)
		case ProductCategory:
			p.Category = strings.TrimSpace(val)
		case ProductImage:
			p.Image = strings.TrimSpace(val)
		case ProductStatus:
			p.Status = strings.TrimSpace(val)
		}
		if err != nil {
			return Product{}, err
		}
	}
	return p, nil
}
