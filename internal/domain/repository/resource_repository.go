package repository

import (
	"context"
	"net/url"

	"go-clinic-dashboard/internal/domain/entity"
)

// ResourceGateway is the upstream REST collection for one resource kind.
type ResourceGateway[T any] interface {
	List(ctx context.Context, query url.Values) ([]T, error)
	Get(ctx context.Context, id entity.ID) (*T, error)
	Create(ctx context.Context, payload map[string]interface{}) (*T, error)
	Update(ctx context.Context, id entity.ID, payload map[string]interface{}) (*T, error)
	Patch(ctx context.Context, id entity.ID, payload map[string]interface{}) (*T, error)
	// Action posts to a detail sub-path such as /admissions/{id}/update_status/.
	Action(ctx context.Context, id entity.ID, action string, payload map[string]interface{}) error
}

// CatalogRepository loads reference collections used by forms.
type CatalogRepository interface {
	List(ctx context.Context, path string, query url.Values) ([]entity.CatalogEntry, error)
}
