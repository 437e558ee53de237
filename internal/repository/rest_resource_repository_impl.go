package repository

import (
	"context"
	"net/url"
	"strings"

	"go-clinic-dashboard/internal/domain/entity"
	domainRepo "go-clinic-dashboard/internal/domain/repository"
	"go-clinic-dashboard/pkg/apiclient"
)

type restResourceRepository[T any] struct {
	client *apiclient.Client
	path   string
}

// NewRestResourceRepository maps a resource kind onto its upstream collection
// path, e.g. /cosmetology/appointments/.
func NewRestResourceRepository[T any](client *apiclient.Client, path string) domainRepo.ResourceGateway[T] {
	return &restResourceRepository[T]{
		client: client,
		path:   "/" + strings.Trim(path, "/") + "/",
	}
}

func (r *restResourceRepository[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	var records []T
	if err := r.client.List(ctx, r.path, query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *restResourceRepository[T]) Get(ctx context.Context, id entity.ID) (*T, error) {
	var record T
	if err := r.client.Get(ctx, r.item(id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *restResourceRepository[T]) Create(ctx context.Context, payload map[string]interface{}) (*T, error) {
	var record T
	if err := r.client.Post(ctx, r.path, payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *restResourceRepository[T]) Update(ctx context.Context, id entity.ID, payload map[string]interface{}) (*T, error) {
	var record T
	if err := r.client.Put(ctx, r.item(id), payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *restResourceRepository[T]) Patch(ctx context.Context, id entity.ID, payload map[string]interface{}) (*T, error) {
	var record T
	if err := r.client.Patch(ctx, r.item(id), payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *restResourceRepository[T]) Action(ctx context.Context, id entity.ID, action string, payload map[string]interface{}) error {
	return r.client.Post(ctx, r.item(id)+strings.Trim(action, "/")+"/", payload, nil)
}

func (r *restResourceRepository[T]) item(id entity.ID) string {
	return r.path + url.PathEscape(id.String()) + "/"
}
