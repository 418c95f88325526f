package order

import (
	"context"
	"log"
)

// Service provides the read-only order history.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// ListByClient returns the client's orders newest first. A backend failure is
// logged and yields an empty history.
func (s *Service) ListByClient(ctx context.Context, clientID string) []Order {
	orders, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		log.Printf("[WARN] order: list for client %s: %v", clientID, err)
		return []Order{}
	}
	for i := range orders {
		if orders[i].StatusLabel == "" {
			orders[i].StatusLabel = orders[i].Status.Label()
		}
		if orders[i].Items == nil {
			orders[i].Items = []Item{}
		}
	}
	return orders
}
