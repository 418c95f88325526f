package client

import (
	"context"
	"errors"

	"github.com/sbilus/storefront-backend/internal/apperror"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Client{}, ErrNotFound
		}
		return Client{}, apperror.Fetch("client.GetByID", err)
	}
	return c, nil
}

// UpdateAddress replaces the saved address. A blank street address is refused.
func (s *Service) UpdateAddress(ctx context.Context, id string, addr Address) (Client, error) {
	addr = addr.normalized()
	if addr.Address == "" {
		return Client{}, apperror.Validation("client.UpdateAddress", "blank_address")
	}
	c, err := s.repo.UpdateAddress(ctx, id, addr)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Client{}, ErrNotFound
		}
		return Client{}, apperror.Fetch("client.UpdateAddress", err)
	}
	return c, nil
}
