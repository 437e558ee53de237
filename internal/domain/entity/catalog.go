package entity

import "github.com/shopspring/decimal"

// Reference collection names.
const (
	CollectionClients           = "clients"
	CollectionCosmetologists    = "cosmetologists"
	CollectionServices          = "services"
	CollectionProducts          = "products"
	CollectionConsultationTypes = "consultation_types"
	CollectionPatients          = "patients"
	CollectionDepartments       = "departments"
)

// CatalogEntry is one row of a reference collection. Only the attributes the
// forms look up are decoded; everything else the server sends is ignored.
type CatalogEntry struct {
	ID       ID              `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration int             `json:"duration"`
	Category string          `json:"category,omitempty"`
}
