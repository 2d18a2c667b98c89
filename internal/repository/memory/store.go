// Package memory реализует хранилище на мьютексах и map для тестов
// и локальных сценариев. Семантика повторяет Postgres-репозитории:
// те же ошибки, те же атомарные переходы статусов.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/models"
)

// Store хранит все сущности в памяти под одним мьютексом.
// Доступ к каждой сущности идёт через типизированные представления:
// Users(), Caravans(), Reservations(), Payments(), Reviews().
type Store struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]*models.User
	caravans     map[uuid.UUID]*models.Caravan
	reservations map[uuid.UUID]*models.Reservation
	payments     map[uuid.UUID]*models.Payment
	reviews      map[uuid.UUID]*models.Review
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]*models.User),
		caravans:     make(map[uuid.UUID]*models.Caravan),
		reservations: make(map[uuid.UUID]*models.Reservation),
		payments:     make(map[uuid.UUID]*models.Payment),
		reviews:      make(map[uuid.UUID]*models.Review),
	}
}

// Users возвращает представление пользователей.
func (s *Store) Users() *UserStore { return &UserStore{s: s} }

// Caravans возвращает представление караванов.
func (s *Store) Caravans() *CaravanStore { return &CaravanStore{s: s} }

// Reservations возвращает представление броней.
func (s *Store) Reservations() *ReservationStore { return &ReservationStore{s: s} }

// Payments возвращает представление платежей.
func (s *Store) Payments() *PaymentStore { return &PaymentStore{s: s} }

// Reviews возвращает представление отзывов.
func (s *Store) Reviews() *ReviewStore { return &ReviewStore{s: s} }
