package usecase

import (
	"strings"
	"time"

	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/resource"

	"github.com/shopspring/decimal"
)

// Upstream paths of the cosmetology reference collections.
const (
	ClientsPath           = "/cosmetology/clients/"
	CosmetologistsPath    = "/cosmetology/cosmetologists/"
	ServicesPath          = "/cosmetology/services/"
	ProductsPath          = "/cosmetology/products/"
	ConsultationTypesPath = "/cosmetology/consultation-types/"
	PatientsPath          = "/hospital/v2/patients/"
	DepartmentsPath       = "/hospital/v2/departments/"
)

const (
	KindProducts = "products"
	KindServices = "services"
)

// NewProductKind configures the product catalog screen, sorted by name.
func NewProductKind() *resource.Kind[entity.Product] {
	return &resource.Kind[entity.Product]{
		Name:             KindProducts,
		Label:            "Product",
		Path:             ProductsPath,
		PageSize:         12,
		ViewPermission:   entity.PermissionProductsView,
		ManagePermission: entity.PermissionProductsManage,
		ID:               func(p entity.Product) entity.ID { return p.ID },
		Searchable: func(p entity.Product) []string {
			return []string{p.Name, p.Description, p.Brand}
		},
		Category: func(p entity.Product) string { return p.Category },
		Less: func(a, b entity.Product, _ *time.Location) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		},
		Status:        func(p entity.Product) string { return string(p.Status()) },
		Statuses:      entity.ProductStatuses,
		Badges:        entity.CatalogBadges,
		Amount:        func(p entity.Product) decimal.Decimal { return p.Price },
		NewForm:       func() interface{} { return &dto.ProductForm{} },
		Defaults:      map[string]interface{}{"is_active": true},
		Numeric:       []string{"price", "stock_quantity"},
		Deactivatable: true,
	}
}

// NewServiceKind configures the service catalog screen, sorted by name.
func NewServiceKind() *resource.Kind[entity.Service] {
	return &resource.Kind[entity.Service]{
		Name:             KindServices,
		Label:            "Service",
		Path:             ServicesPath,
		PageSize:         12,
		ViewPermission:   entity.PermissionServicesView,
		ManagePermission: entity.PermissionServicesManage,
		ID:               func(s entity.Service) entity.ID { return s.ID },
		Searchable: func(s entity.Service) []string {
			return []string{s.Name, s.Description, s.Category}
		},
		Category: func(s entity.Service) string { return s.Category },
		Less: func(a, b entity.Service, _ *time.Location) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		},
		Status:        func(s entity.Service) string { return string(s.Status()) },
		Statuses:      entity.ServiceStatuses,
		Badges:        entity.CatalogBadges,
		Amount:        func(s entity.Service) decimal.Decimal { return s.Price },
		NewForm:       func() interface{} { return &dto.ServiceForm{} },
		Defaults:      map[string]interface{}{"is_active": true},
		Numeric:       []string{"price", "duration"},
		Deactivatable: true,
	}
}
