package service

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/models"
)

// SeedService генерирует демонстрационные данные для локального окружения.
type SeedService struct {
	users    UserRepository
	caravans CaravanRepository
	payments PaymentRepository
}

// NewSeedService создаёт новый сервис для генерации данных.
func NewSeedService(users UserRepository, caravans CaravanRepository, payments PaymentRepository) *SeedService {
	return &SeedService{users: users, caravans: caravans, payments: payments}
}

// SeedData генерирует хостов, гостей с балансом и караваны.
func (s *SeedService) SeedData(ctx context.Context, numHosts, numGuests, numCaravans int) error {
	hosts, err := s.generateUsers(ctx, numHosts, models.RoleHost)
	if err != nil {
		return fmt.Errorf("seed service: не удалось создать хостов: %w", err)
	}

	guests, err := s.generateUsers(ctx, numGuests, models.RoleGuest)
	if err != nil {
		return fmt.Errorf("seed service: не удалось создать гостей: %w", err)
	}

	// Гостям нужен баланс, чтобы оплачивать брони.
	for _, guest := range guests {
		amount := float64(500 + rand.Intn(10)*100)
		if err := s.payments.Deposit(ctx, guest.ID, amount); err != nil {
			return fmt.Errorf("seed service: не удалось пополнить баланс гостя: %w", err)
		}
	}

	if err := s.generateCaravans(ctx, hosts, numCaravans); err != nil {
		return fmt.Errorf("seed service: не удалось создать караваны: %w", err)
	}

	return nil
}

// generateUsers создаёт пользователей заданной роли.
func (s *SeedService) generateUsers(ctx context.Context, count int, role string) ([]*models.User, error) {
	firstNames := []string{
		"Александр", "Дмитрий", "Максим", "Сергей", "Андрей", "Алексей", "Артём", "Илья",
		"Анна", "Мария", "Елена", "Ольга", "Екатерина", "Юлия", "Анастасия", "Дарья",
	}
	lastNames := []string{
		"Иванов", "Петров", "Смирнов", "Козлов", "Соколов", "Попов", "Лебедев", "Новиков",
		"Морозов", "Волков", "Васильев", "Зайцев", "Павлов", "Семёнов", "Фёдоров", "Белов",
	}
	domains := []string{"gmail.com", "yandex.ru", "mail.ru", "outlook.com"}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		firstName := firstNames[rand.Intn(len(firstNames))]
		lastName := lastNames[rand.Intn(len(lastNames))]
		username := fmt.Sprintf("%s_%s_%d", role, lastName, rand.Intn(10000))

		user := &models.User{
			ID:       uuid.New(),
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, domains[rand.Intn(len(domains))]),
			Role:     role,
			Name:     fmt.Sprintf("%s %s", firstName, lastName),
			Contact:  fmt.Sprintf("+7-9%02d-%03d-%02d-%02d", rand.Intn(100), rand.Intn(1000), rand.Intn(100), rand.Intn(100)),
		}

		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// generateCaravans создаёт караваны и распределяет их по хостам.
func (s *SeedService) generateCaravans(ctx context.Context, hosts []*models.User, count int) error {
	if len(hosts) == 0 {
		return fmt.Errorf("нет хостов для караванов")
	}

	names := []string{
		"Винтажный Airstream у озера", "Уютный Teardrop", "Семейный автодом", "Караван для серфинга",
		"Лесной домик на колёсах", "Кемпер с панорамной крышей", "Ретро-фургон", "Караван у моря",
	}
	amenities := []string{"WiFi", "Кондиционер", "Кухня", "Душ", "Солнечные панели", "Маркиза", "Холодильник"}

	for i := 0; i < count; i++ {
		host := hosts[rand.Intn(len(hosts))]

		selected := make([]string, 0, 3)
		for _, a := range amenities {
			if rand.Intn(2) == 0 {
				selected = append(selected, a)
			}
		}

		caravan := &models.Caravan{
			ID:        uuid.New(),
			HostID:    host.ID,
			Name:      fmt.Sprintf("%s #%d", names[rand.Intn(len(names))], i+1),
			Capacity:  2 + rand.Intn(5),
			Amenities: selected,
			DailyRate: float64(50 + rand.Intn(20)*10),
			Status:    valueobject.CaravanStatusAvailable,
		}

		if err := s.caravans.Create(ctx, caravan); err != nil {
			return err
		}
	}

	return nil
}
