package memory

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/karravan/booking-backend/internal/domain/valueobject"
	"github.com/karravan/booking-backend/internal/models"
	"github.com/karravan/booking-backend/internal/pkg/apperror"
	"github.com/karravan/booking-backend/internal/service"
)

type fixture struct {
	store        *Store
	users        *service.UserService
	caravans     *service.CaravanService
	reservations *service.ReservationService
	payments     *service.PaymentService
	reviews      *service.ReviewService
}

func newFixture() *fixture {
	store := NewStore()
	return &fixture{
		store:        store,
		users:        service.NewUserService(store.Users()),
		caravans:     service.NewCaravanService(store.Caravans(), store.Users()),
		reservations: service.NewReservationService(store.Reservations(), store.Users(), store.Caravans()),
		payments:     service.NewPaymentService(store.Payments(), store.Reservations(), store.Users()),
		reviews:      service.NewReviewService(store.Reviews(), store.Reservations(), store.Caravans(), store.Users()),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f *fixture) createHost(t *testing.T, ctx context.Context) *models.User {
	t.Helper()
	host, err := f.users.CreateUser(ctx, "host_"+uuid.NewString()[:8], "host@example.com", models.RoleHost, "Хост", "")
	assert.NoError(t, err)
	return host
}

func (f *fixture) createGuest(t *testing.T, ctx context.Context, balance float64) *models.User {
	t.Helper()
	guest, err := f.users.CreateUser(ctx, "guest_"+uuid.NewString()[:8], "guest@example.com", models.RoleGuest, "Гость", "")
	assert.NoError(t, err)
	if balance > 0 {
		assert.NoError(t, f.payments.Deposit(ctx, guest.ID, balance))
	}
	return guest
}

func (f *fixture) createCaravan(t *testing.T, ctx context.Context, hostID uuid.UUID, rate float64) *models.Caravan {
	t.Helper()
	caravan, err := f.caravans.CreateCaravan(ctx, hostID, "Караван у озера", 4, []string{"WiFi"}, rate)
	assert.NoError(t, err)
	return caravan
}

// Полный жизненный цикл: бронь, оплата, завершение, отзыв.
func TestLifecycle_BookPayCompleteReview(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	host := f.createHost(t, ctx)
	guest := f.createGuest(t, ctx, 500)
	caravan := f.createCaravan(t, ctx, host.ID, 100)

	reservation, err := f.reservations.Create(ctx, guest.ID, caravan.ID, day(2025, 8, 1), day(2025, 8, 5))
	assert.NoError(t, err)
	assert.Equal(t, valueobject.ReservationStatusPending, reservation.Status)
	assert.Equal(t, float64(400), reservation.TotalPrice)

	payment, err := f.payments.ProcessPayment(ctx, guest.ID, reservation.ID)
	assert.NoError(t, err)
	assert.Equal(t, valueobject.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, float64(400), payment.Amount)

	// Баланс списан, бронь подтверждена оплатой.
	guestAfter, err := f.users.GetUserByID(ctx, guest.ID)
	assert.NoError(t, err)
	assert.Equal(t, float64(100), guestAfter.Balance)

	reservationAfter, err := f.reservations.GetByID(ctx, reservation.ID)
	assert.NoError(t, err)
	assert.Equal(t, valueobject.ReservationStatusApproved, reservationAfter.Status)

	_, err = f.reservations.Complete(ctx, reservation.ID)
	assert.NoError(t, err)

	review, err := f.reviews.CreateReview(ctx, reservation.ID, guest.ID, 5, "Отличный караван")
	assert.NoError(t, err)
	assert.Equal(t, host.ID, review.RevieweeID)

	hostAfter, err := f.users.GetUserByID(ctx, host.ID)
	assert.NoError(t, err)
	assert.Equal(t, float64(5), hostAfter.Rating)
	assert.Equal(t, 1, hostAfter.RatingCount)

	// Повторный отзыв по той же брони отклоняется.
	_, err = f.reviews.CreateReview(ctx, reservation.ID, guest.ID, 1, "ещё раз")
	assert.True(t, apperror.IsConflict(err))

	history, err := f.payments.GetPaymentHistory(ctx, guest.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
}

// Рейтинг хоста - среднее по всем отзывам, а не последняя оценка.
func TestHostRating_RunningAverage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	host := f.createHost(t, ctx)
	caravan := f.createCaravan(t, ctx, host.ID, 100)

	ratings := []int{5, 1, 3}
	start := day(2025, 8, 1)
	for i, rating := range ratings {
		guest := f.createGuest(t, ctx, 1000)
		reservation, err := f.reservations.Create(ctx, guest.ID, caravan.ID,
			start.AddDate(0, 0, i*10), start.AddDate(0, 0, i*10+3))
		assert.NoError(t, err)
		_, err = f.payments.ProcessPayment(ctx, guest.ID, reservation.ID)
		assert.NoError(t, err)
		_, err = f.reservations.Complete(ctx, reservation.ID)
		assert.NoError(t, err)
		_, err = f.reviews.CreateReview(ctx, reservation.ID, guest.ID, rating, "отзыв")
		assert.NoError(t, err)
	}

	hostAfter, err := f.users.GetUserByID(ctx, host.ID)
	assert.NoError(t, err)
	assert.Equal(t, float64(3), hostAfter.Rating)
	assert.Equal(t, 3, hostAfter.RatingCount)
}

// После отмены брони даты освобождаются.
func TestCancel_FreesDates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	host := f.createHost(t, ctx)
	guest := f.createGuest(t, ctx, 1000)
	caravan := f.createCaravan(t, ctx, host.ID, 100)

	first, err := f.reservations.Create(ctx, guest.ID, caravan.ID, day(2025, 8, 1), day(2025, 8, 5))
	assert.NoError(t, err)

	// Те же даты заняты.
	_, err = f.reservations.Create(ctx, guest.ID, caravan.ID, day(2025, 8, 3), day(2025, 8, 7))
	assert.ErrorIs(t, err, apperror.ErrDatesConflict)

	_, err = f.reservations.Cancel(ctx, first.ID, guest.ID)
	assert.NoError(t, err)

	_, err = f.reservations.Create(ctx, guest.ID, caravan.ID, day(2025, 8, 3), day(2025, 8, 7))
	assert.NoError(t, err)
}

// Отклонённая хостом бронь тоже освобождает даты.
func TestReject_FreesDates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	host := f.createHost(t, ctx)
	guest := f.createGuest(t, ctx, 1000)
	caravan := f.createCaravan(t, ctx, host.ID, 100)

	first, err := f.reservations.Create(ctx, guest.ID, caravan.ID, day(2025, 8, 1), day(2025, 8, 5))
	assert.NoError(t, err)

	_, err = f.reservations.Reject(ctx, first.ID, host.ID)
	assert.NoError(t, err)

	_, err = f.reservations.Create(ctx, guest.ID, caravan.ID, day(2025, 8, 1), day(2025, 8, 5))
	assert.NoError(t, err)
}

// Из конкурентных броней на пересекающиеся даты проходит ровно одна.
func TestConcurrentCreate_OneWins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	host := f.createHost(t, ctx)
	caravan := f.createCaravan(t, ctx, host.ID, 100)

	const workers = 16
	guests := make([]*models.User, workers)
	for i := range guests {
		guests[i] = f.createGuest(t, ctx, 1000)
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.reservations.Create(ctx, guests[i].ID, caravan.ID, day(2025, 8, 1), day(2025, 8, 5))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperror.ErrDatesConflict)
		}
	}
	assert.Equal(t, 1, succeeded)

	all, err := f.reservations.ListByCaravan(ctx, caravan.ID)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

// Из конкурентных оплат одной брони средства списываются ровно один раз.
func TestConcurrentPayment_SingleDebit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	host := f.createHost(t, ctx)
	guest := f.createGuest(t, ctx, 500)
	caravan := f.createCaravan(t, ctx, host.ID, 100)

	reservation, err := f.reservations.Create(ctx, guest.ID, caravan.ID, day(2025, 8, 1), day(2025, 8, 5))
	assert.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.payments.ProcessPayment(ctx, guest.ID, reservation.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	guestAfter, err := f.users.GetUserByID(ctx, guest.ID)
	assert.NoError(t, err)
	assert.Equal(t, float64(100), guestAfter.Balance)

	history, err := f.payments.GetPaymentHistory(ctx, guest.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
}

// Случайные брони на один караван: принятые активные брони
// попарно не пересекаются.
func TestCreate_AcceptedReservationsNeverOverlap(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	host := f.createHost(t, ctx)
	guest := f.createGuest(t, ctx, 0)
	caravan := f.createCaravan(t, ctx, host.ID, 100)

	rnd := rand.New(rand.NewSource(7))
	origin := day(2025, 6, 1)

	for i := 0; i < 200; i++ {
		start := origin.AddDate(0, 0, rnd.Intn(90))
		end := start.AddDate(0, 0, 1+rnd.Intn(14))
		_, err := f.reservations.Create(ctx, guest.ID, caravan.ID, start, end)
		if err != nil {
			assert.ErrorIs(t, err, apperror.ErrDatesConflict)
		}
	}

	accepted, err := f.reservations.ListByCaravan(ctx, caravan.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, accepted)

	for i := range accepted {
		for j := i + 1; j < len(accepted); j++ {
			assert.False(t, accepted[i].Range().Overlaps(accepted[j].Range()),
				"брони %s и %s пересекаются", accepted[i].ID, accepted[j].ID)
		}
	}
}

// Недостаток средств не меняет ни баланс, ни статус брони.
func TestPayment_InsufficientFundsLeavesStateIntact(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	host := f.createHost(t, ctx)
	guest := f.createGuest(t, ctx, 300)
	caravan := f.createCaravan(t, ctx, host.ID, 100)

	reservation, err := f.reservations.Create(ctx, guest.ID, caravan.ID, day(2025, 8, 1), day(2025, 8, 5))
	assert.NoError(t, err)

	_, err = f.payments.ProcessPayment(ctx, guest.ID, reservation.ID)
	assert.ErrorIs(t, err, apperror.ErrInsufficientFunds)

	guestAfter, err := f.users.GetUserByID(ctx, guest.ID)
	assert.NoError(t, err)
	assert.Equal(t, float64(300), guestAfter.Balance)

	reservationAfter, err := f.reservations.GetByID(ctx, reservation.ID)
	assert.NoError(t, err)
	assert.Equal(t, valueobject.ReservationStatusPending, reservationAfter.Status)

	history, err := f.payments.GetPaymentHistory(ctx, guest.ID)
	assert.NoError(t, err)
	assert.Empty(t, history)
}

// Караван на обслуживании нельзя забронировать.
func TestCreate_MaintenanceCaravanRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	host := f.createHost(t, ctx)
	guest := f.createGuest(t, ctx, 1000)
	caravan := f.createCaravan(t, ctx, host.ID, 100)

	_, err := f.caravans.SetStatus(ctx, caravan.ID, host.ID, "maintenance")
	assert.NoError(t, err)

	_, err = f.reservations.Create(ctx, guest.ID, caravan.ID, day(2025, 8, 1), day(2025, 8, 5))
	assert.True(t, apperror.IsInvalidState(err))
}

// Отзыв до завершения брони невозможен.
func TestReview_RequiresCompletedReservation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	host := f.createHost(t, ctx)
	guest := f.createGuest(t, ctx, 1000)
	caravan := f.createCaravan(t, ctx, host.ID, 100)

	reservation, err := f.reservations.Create(ctx, guest.ID, caravan.ID, day(2025, 8, 1), day(2025, 8, 5))
	assert.NoError(t, err)

	_, err = f.reviews.CreateReview(ctx, reservation.ID, guest.ID, 5, "рано")
	assert.True(t, apperror.IsInvalidState(err))

	_, err = f.payments.ProcessPayment(ctx, guest.ID, reservation.ID)
	assert.NoError(t, err)

	_, err = f.reviews.CreateReview(ctx, reservation.ID, guest.ID, 5, "всё ещё рано")
	assert.True(t, apperror.IsInvalidState(err))
}
