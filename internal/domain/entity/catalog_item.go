package entity

import (
	"go-clinic-dashboard/pkg/display"

	"github.com/shopspring/decimal"
)

// CatalogStatus is derived from is_active and stock; the server has no
// status column for products or services.
type CatalogStatus string

const (
	CatalogStatusActive     CatalogStatus = "active"
	CatalogStatusInactive   CatalogStatus = "inactive"
	CatalogStatusOutOfStock CatalogStatus = "out_of_stock"
)

var ProductStatuses = []string{
	string(CatalogStatusActive),
	string(CatalogStatusInactive),
	string(CatalogStatusOutOfStock),
}

var ServiceStatuses = []string{
	string(CatalogStatusActive),
	string(CatalogStatusInactive),
}

var CatalogBadges = map[string]display.Variant{
	string(CatalogStatusActive):     display.Success,
	string(CatalogStatusInactive):   display.Secondary,
	string(CatalogStatusOutOfStock): display.Warning,
}

type Product struct {
	ID            ID              `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     string          `json:"created_at,omitempty"`
}

func (p Product) Status() CatalogStatus {
	switch {
	case !p.IsActive:
		return CatalogStatusInactive
	case p.StockQuantity <= 0:
		return CatalogStatusOutOfStock
	default:
		return CatalogStatusActive
	}
}

type Service struct {
	ID          ID              `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Duration    int             `json:"duration"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   string          `json:"created_at,omitempty"`
}

func (s Service) Status() CatalogStatus {
	if !s.IsActive {
		return CatalogStatusInactive
	}
	return CatalogStatusActive
}
