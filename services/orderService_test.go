package services

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"testing"
	"time"

	"family-restaurant/models"
	"family-restaurant/notifications"
	"family-restaurant/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeMenuRepo struct {
	items map[string]*models.MenuItem
}

func (f *fakeMenuRepo) GetByID(_ context.Context, id string) (*models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

type fakeOrderRepo struct {
	orders        []models.Order
	rejectInserts int // next N inserts fail as duplicates
}

func (f *fakeOrderRepo) Insert(_ context.Context, order *models.Order) error {
	if f.rejectInserts > 0 {
		f.rejectInserts--
		return repositories.ErrDuplicateOrderID
	}
	for _, existing := range f.orders {
		if existing.OrderID == order.OrderID {
			return repositories.ErrDuplicateOrderID
		}
	}
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id string) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].OrderID == id || f.orders[i].ID.Hex() == id {
			copied := f.orders[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, order *models.Order) error {
	for i := range f.orders {
		if f.orders[i].OrderID == order.OrderID {
			f.orders[i].Status = order.Status
			f.orders[i].AcceptedAt = order.AcceptedAt
			f.orders[i].CompletedAt = order.CompletedAt
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeOrderRepo) ListNewest(_ context.Context, limit int64) ([]models.Order, error) {
	return newestFirst(f.orders, limit), nil
}

func (f *fakeOrderRepo) ListBetween(_ context.Context, from, to time.Time, limit int64) ([]models.Order, error) {
	var matched []models.Order
	for _, order := range f.orders {
		if !order.CreatedAt.Before(from) && !order.CreatedAt.After(to) {
			matched = append(matched, order)
		}
	}
	return newestFirst(matched, limit), nil
}

func newestFirst(orders []models.Order, limit int64) []models.Order {
	sorted := append([]models.Order(nil), orders...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if limit > 0 && int64(len(sorted)) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

type recordingPublisher struct {
	events []notifications.Event
}

func (p *recordingPublisher) Publish(event string, payload interface{}) {
	p.events = append(p.events, notifications.Event{Event: event, Payload: payload})
}

var testClock = time.Date(2026, time.August, 31, 14, 30, 0, 0, time.UTC)

func newTestService(strict bool) (*OrderService, *fakeOrderRepo, *fakeMenuRepo, *recordingPublisher) {
	orderRepo := &fakeOrderRepo{}
	menuRepo := &fakeMenuRepo{items: make(map[string]*models.MenuItem)}
	pub := &recordingPublisher{}
	svc := NewOrderService(orderRepo, menuRepo, pub, strict)
	svc.now = func() time.Time { return testClock }
	return svc, orderRepo, menuRepo, pub
}

func addMenuItem(menuRepo *fakeMenuRepo, name string, price float64, available bool) string {
	item := &models.MenuItem{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Price:     price,
		Category:  "starters",
		Available: available,
	}
	menuRepo.items[item.ID.Hex()] = item
	return item.ID.Hex()
}

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	svc, _, menuRepo, _ := newTestService(true)
	paneerID := addMenuItem(menuRepo, "Paneer Tikka", 180, true)
	lassiID := addMenuItem(menuRepo, "Sweet Lassi", 60, true)

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "Asha",
		TableNumber:  4,
		Items: []OrderLineRequest{
			{ItemID: paneerID, Quantity: 2},
			{ItemID: lassiID, Quantity: 3, SpiceLevel: "mild"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 180.0*2+60.0*3, order.TotalAmount)
	assert.Equal(t, "cash", order.PaymentMethod)
	assert.Equal(t, "dine-in", order.OrderType)
	assert.Equal(t, testClock, order.CreatedAt)
	assert.Nil(t, order.AcceptedAt)
	assert.Nil(t, order.CompletedAt)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Paneer Tikka", order.Items[0].Name)
	assert.Equal(t, 180.0, order.Items[0].Price)

	// Later menu edits must not touch the snapshot.
	menuRepo.items[paneerID].Price = 999
	assert.Equal(t, 180.0, order.Items[0].Price)
	assert.Equal(t, 420.0, order.TotalAmount)
}

func TestCreateOrderRejectsUnavailableItem(t *testing.T) {
	svc, orderRepo, menuRepo, pub := newTestService(true)
	id := addMenuItem(menuRepo, "Paneer Tikka", 180, false)

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "Asha",
		TableNumber:  4,
		Items:        []OrderLineRequest{{ItemID: id, Quantity: 2}},
	})

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, err.Error(), "Paneer Tikka")
	assert.Empty(t, orderRepo.orders, "no partial order may persist")
	assert.Empty(t, pub.events)
}

func TestCreateOrderRejectsUnknownItem(t *testing.T) {
	svc, orderRepo, menuRepo, _ := newTestService(true)
	addMenuItem(menuRepo, "Paneer Tikka", 180, true)
	missing := primitive.NewObjectID().Hex()

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "Asha",
		TableNumber:  4,
		Items:        []OrderLineRequest{{ItemID: missing, Quantity: 1}},
	})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), missing)
	assert.Empty(t, orderRepo.orders)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, menuRepo, _ := newTestService(true)
	id := addMenuItem(menuRepo, "Paneer Tikka", 180, true)

	cases := []struct {
		name string
		req  CreateOrderRequest
	}{
		{"missing customer", CreateOrderRequest{TableNumber: 1, Items: []OrderLineRequest{{ItemID: id, Quantity: 1}}}},
		{"bad table number", CreateOrderRequest{CustomerName: "A", TableNumber: 0, Items: []OrderLineRequest{{ItemID: id, Quantity: 1}}}},
		{"no items", CreateOrderRequest{CustomerName: "A", TableNumber: 1}},
		{"zero quantity", CreateOrderRequest{CustomerName: "A", TableNumber: 1, Items: []OrderLineRequest{{ItemID: id, Quantity: 0}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			var validation *ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestOrderIDFormatAndUniqueness(t *testing.T) {
	svc, orderRepo, menuRepo, _ := newTestService(true)
	id := addMenuItem(menuRepo, "Paneer Tikka", 180, true)

	format := regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		order, err := svc.Create(context.Background(), CreateOrderRequest{
			CustomerName: "Asha",
			TableNumber:  1,
			Items:        []OrderLineRequest{{ItemID: id, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Regexp(t, format, order.OrderID)
		assert.False(t, seen[order.OrderID], "duplicate order id %s", order.OrderID)
		seen[order.OrderID] = true
	}
	assert.Len(t, orderRepo.orders, 50)
}

func TestCreateOrderRetriesConflictOnce(t *testing.T) {
	svc, orderRepo, menuRepo, _ := newTestService(true)
	id := addMenuItem(menuRepo, "Paneer Tikka", 180, true)
	orderRepo.rejectInserts = 1

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "Asha",
		TableNumber:  1,
		Items:        []OrderLineRequest{{ItemID: id, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Len(t, orderRepo.orders, 1)
	assert.Equal(t, order.OrderID, orderRepo.orders[0].OrderID)

	orderRepo.rejectInserts = 2
	_, err = svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "Asha",
		TableNumber:  1,
		Items:        []OrderLineRequest{{ItemID: id, Quantity: 1}},
	})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestCreateOrderPublishesNewOrderEvent(t *testing.T) {
	svc, _, menuRepo, pub := newTestService(true)
	id := addMenuItem(menuRepo, "Paneer Tikka", 180, true)

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "Asha",
		TableNumber:  1,
		Items:        []OrderLineRequest{{ItemID: id, Quantity: 1}},
	})
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, notifications.EventNewOrder, pub.events[0].Event)
	published := pub.events[0].Payload.(*models.Order)
	assert.Equal(t, order.OrderID, published.OrderID)
}

func TestCreateOrderWithoutPublisher(t *testing.T) {
	orderRepo := &fakeOrderRepo{}
	menuRepo := &fakeMenuRepo{items: make(map[string]*models.MenuItem)}
	svc := NewOrderService(orderRepo, menuRepo, nil, true)
	id := addMenuItem(menuRepo, "Paneer Tikka", 180, true)

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "Asha",
		TableNumber:  1,
		Items:        []OrderLineRequest{{ItemID: id, Quantity: 1}},
	})
	assert.NoError(t, err)
}

func seedOrder(repo *fakeOrderRepo, status models.OrderStatus, createdAt time.Time, total float64) models.Order {
	order := models.Order{
		ID:          primitive.NewObjectID(),
		OrderID:     "ORD-" + primitive.NewObjectID().Hex()[16:],
		Status:      status,
		TotalAmount: total,
		CreatedAt:   createdAt,
	}
	repo.orders = append(repo.orders, order)
	return order
}

func TestUpdateStatusSetsTimestampsOnce(t *testing.T) {
	svc, orderRepo, _, _ := newTestService(true)
	seeded := seedOrder(orderRepo, models.StatusPending, testClock, 360)

	updated, err := svc.UpdateStatus(context.Background(), seeded.OrderID, models.StatusAccepted)
	require.NoError(t, err)
	require.NotNil(t, updated.AcceptedAt)
	firstAccepted := *updated.AcceptedAt

	// Re-entering accepted must not overwrite the timestamp.
	svc.now = func() time.Time { return testClock.Add(time.Hour) }
	updated, err = svc.UpdateStatus(context.Background(), seeded.OrderID, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, firstAccepted, *updated.AcceptedAt)

	_, err = svc.UpdateStatus(context.Background(), seeded.OrderID, models.StatusPreparing)
	require.NoError(t, err)
	updated, err = svc.UpdateStatus(context.Background(), seeded.OrderID, models.StatusReady)
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)

	updated, err = svc.UpdateStatus(context.Background(), seeded.OrderID, models.StatusServed)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, testClock.Add(time.Hour), *updated.CompletedAt)
	assert.Equal(t, firstAccepted, *updated.AcceptedAt, "acceptedAt unchanged by later transitions")
}

func TestUpdateStatusStrictModeRejectsIllegalMoves(t *testing.T) {
	svc, orderRepo, _, pub := newTestService(true)
	seeded := seedOrder(orderRepo, models.StatusServed, testClock, 100)

	_, err := svc.UpdateStatus(context.Background(), seeded.OrderID, models.StatusPending)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Empty(t, pub.events, "rejected update must not notify")

	pending := seedOrder(orderRepo, models.StatusPending, testClock, 100)
	_, err = svc.UpdateStatus(context.Background(), pending.OrderID, models.StatusServed)
	require.ErrorAs(t, err, &validation)
}

func TestUpdateStatusPermissiveMode(t *testing.T) {
	svc, orderRepo, _, _ := newTestService(false)
	seeded := seedOrder(orderRepo, models.StatusServed, testClock, 100)

	// The permissive flag restores the original accept-anything behavior.
	updated, err := svc.UpdateStatus(context.Background(), seeded.OrderID, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), seeded.OrderID, "burnt")
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation, "unknown status values are still rejected")
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(true)
	_, err := svc.UpdateStatus(context.Background(), "ORD-DEADBEEF", models.StatusAccepted)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestUpdateStatusPublishesOrderUpdated(t *testing.T) {
	svc, orderRepo, _, pub := newTestService(true)
	seeded := seedOrder(orderRepo, models.StatusPending, testClock, 360)

	_, err := svc.UpdateStatus(context.Background(), seeded.OrderID, models.StatusCancelled)
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, notifications.EventOrderUpdated, pub.events[0].Event)
	published := pub.events[0].Payload.(*models.Order)
	assert.Equal(t, models.StatusCancelled, published.Status)
}

func TestListTodayFilter(t *testing.T) {
	svc, orderRepo, _, _ := newTestService(true)

	yesterday := seedOrder(orderRepo, models.StatusServed, testClock.AddDate(0, 0, -1), 100)
	morning := seedOrder(orderRepo, models.StatusPending, testClock.Add(-5*time.Hour), 200)
	afternoon := seedOrder(orderRepo, models.StatusPending, testClock, 300)
	midnight := seedOrder(orderRepo, models.StatusPending,
		time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC), 50)

	today, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, today, 3)
	assert.Equal(t, afternoon.OrderID, today[0].OrderID, "newest first")
	assert.Equal(t, morning.OrderID, today[1].OrderID)
	assert.Equal(t, midnight.OrderID, today[2].OrderID)

	all, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, yesterday.OrderID, all[3].OrderID)
}

func TestListCap(t *testing.T) {
	svc, orderRepo, _, _ := newTestService(true)
	for i := 0; i < 120; i++ {
		seedOrder(orderRepo, models.StatusPending, testClock.Add(-time.Duration(i)*time.Minute), 10)
	}
	orders, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, orders, 100)
}

func TestStatsExcludeCancelledRevenue(t *testing.T) {
	svc, orderRepo, _, _ := newTestService(true)

	seedOrder(orderRepo, models.StatusPending, testClock, 100)
	seedOrder(orderRepo, models.StatusPending, testClock.Add(-30*time.Minute), 0)
	seedOrder(orderRepo, models.StatusServed, testClock.Add(-time.Hour), 250)
	seedOrder(orderRepo, models.StatusCancelled, testClock.Add(-2*time.Hour), 999)
	seedOrder(orderRepo, models.StatusPending, testClock.AddDate(0, 0, -1), 500) // yesterday

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 4, stats.TodayOrders)
	assert.Equal(t, 2, stats.PendingOrders)
	assert.Equal(t, 350.0, stats.TotalRevenue, "cancelled orders excluded from revenue")
}

func TestHourlyChartBuckets(t *testing.T) {
	svc, orderRepo, _, _ := newTestService(true)

	at := func(hour int) time.Time {
		return time.Date(2026, time.August, 31, hour, 15, 0, 0, time.UTC)
	}
	seedOrder(orderRepo, models.StatusPending, at(9), 120)
	seedOrder(orderRepo, models.StatusServed, at(9), 80)
	seedOrder(orderRepo, models.StatusPending, at(13), 300)
	seedOrder(orderRepo, models.StatusCancelled, at(13), 999)

	chart, err := svc.HourlyChart(context.Background())
	require.NoError(t, err)

	require.Len(t, chart.Labels, 24)
	assert.Equal(t, "00:00", chart.Labels[0])
	assert.Equal(t, "23:00", chart.Labels[23])

	assert.Equal(t, 2, chart.Orders[9])
	assert.Equal(t, 200.0, chart.Revenue[9])
	assert.Equal(t, 1, chart.Orders[13], "cancelled orders are not charted")
	assert.Equal(t, 300.0, chart.Revenue[13])
	assert.Equal(t, 0, chart.Orders[10])
}

func TestRepositoryErrorsPropagate(t *testing.T) {
	svc, _, _, _ := newTestService(true)
	svc.orders = &failingOrderRepo{}

	_, err := svc.Stats(context.Background())
	assert.Error(t, err)
	_, err = svc.List(context.Background(), true)
	assert.Error(t, err)
}

type failingOrderRepo struct{}

var errRepoDown = errors.New("connection reset")

func (f *failingOrderRepo) Insert(context.Context, *models.Order) error { return errRepoDown }
func (f *failingOrderRepo) FindByID(context.Context, string) (*models.Order, error) {
	return nil, errRepoDown
}
func (f *failingOrderRepo) UpdateStatus(context.Context, *models.Order) error { return errRepoDown }
func (f *failingOrderRepo) ListNewest(context.Context, int64) ([]models.Order, error) {
	return nil, errRepoDown
}
func (f *failingOrderRepo) ListBetween(context.Context, time.Time, time.Time, int64) ([]models.Order, error) {
	return nil, errRepoDown
}
