package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
)

// CaravanStore реализует интерфейс репозитория караванов.
type CaravanStore struct {
	s *Store
}

func (c *CaravanStore) Create(ctx context.Context, caravan *models.Caravan) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	now := time.Now().UTC()
	caravan.CreatedAt = now
	caravan.UpdatedAt = now
	clone := *caravan
	c.s.caravans[caravan.ID] = &clone
	return nil
}

func (c *CaravanStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Caravan, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	caravan, ok := c.s.caravans[id]
	if !ok {
		return nil, apperror.ErrCaravanNotFound
	}
	clone := *caravan
	return &clone, nil
}

func (c *CaravanStore) List(ctx context.Context) ([]models.Caravan, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	caravans := make([]models.Caravan, 0, len(c.s.caravans))
	for _, crv := range c.s.caravans {
		caravans = append(caravans, *crv)
	}
	return caravans, nil
}

func (c *CaravanStore) UpdateStatus(ctx context.Context, id uuid.UUID, status valueobject.CaravanStatus) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	caravan, ok := c.s.caravans[id]
	if !ok {
		return apperror.ErrCaravanNotFound
	}
	caravan.Status = status
	caravan.UpdatedAt = time.Now().UTC()
	return nil
}
