package repository

import (
	"context"

	domainRepo "go-clinic-dashboard/internal/domain/repository"
	"go-clinic-dashboard/pkg/apiclient"
)

const LoginPath = "/auth/login/"

type authGateway struct {
	client *apiclient.Client
}

func NewAuthGateway(client *apiclient.Client) domainRepo.AuthGateway {
	return &authGateway{client: client}
}

func (g *authGateway) Login(ctx context.Context, username, password string) (*domainRepo.LoginResult, error) {
	var result domainRepo.LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := g.client.Post(ctx, LoginPath, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
