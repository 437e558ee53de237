package repository

import (
	"context"
	"net/url"

	"go-clinic-dashboard/internal/domain/entity"
	domainRepo "go-clinic-dashboard/internal/domain/repository"
	"go-clinic-dashboard/pkg/apiclient"
)

type catalogRepository struct {
	client *apiclient.Client
}

func NewCatalogRepository(client *apiclient.Client) domainRepo.CatalogRepository {
	return &catalogRepository{client: client}
}

func (r *catalogRepository) List(ctx context.Context, path string, query url.Values) ([]entity.CatalogEntry, error) {
	var entries []entity.CatalogEntry
	if err := r.client.List(ctx, path, query, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
