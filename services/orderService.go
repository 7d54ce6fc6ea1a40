package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"family-restaurant/models"
	"family-restaurant/notifications"
	"family-restaurant/repositories"
	"family-restaurant/statemachine"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxOrdersPerList = 100

type CreateOrderRequest struct {
	CustomerName  string             `json:"customerName" validate:"required"`
	TableNumber   int                `json:"tableNumber" validate:"required,gt=0"`
	Items         []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"paymentMethod" validate:"omitempty,oneof=cash card upi"`
	OrderType     string             `json:"orderType" validate:"omitempty,oneof=dine-in takeaway"`
}

type OrderLineRequest struct {
	ItemID              string `json:"itemId" validate:"required"`
	Quantity            int    `json:"quantity" validate:"required,gt=0"`
	SpecialInstructions string `json:"specialInstructions"`
	SpiceLevel          string `json:"spiceLevel" validate:"omitempty,oneof=mild medium spicy extra-spicy"`
}

type OrderStats struct {
	TotalOrders   int     `json:"totalOrders"`
	PendingOrders int     `json:"pendingOrders"`
	TodayOrders   int     `json:"todayOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

type HourlyChart struct {
	Labels  []string  `json:"labels"`
	Orders  []int     `json:"orders"`
	Revenue []float64 `json:"revenue"`
}

// OrderService validates and prices incoming orders against the menu
// catalog, persists them, transitions status and computes the dashboard
// aggregates. Notification publishing is best-effort: it never fails or
// rolls back the operation that triggered it.
type OrderService struct {
	orders            repositories.OrderRepository
	menu              repositories.MenuRepository
	publisher         notifications.Publisher
	strictTransitions bool
	now               func() time.Time
}

func NewOrderService(orders repositories.OrderRepository, menu repositories.MenuRepository, publisher notifications.Publisher, strictTransitions bool) *OrderService {
	return &OrderService{
		orders:            orders,
		menu:              menu,
		publisher:         publisher,
		strictTransitions: strictTransitions,
		now:               time.Now,
	}
}

// Create prices the requested lines against the current catalog and persists
// the order with status pending. The whole order is rejected if any line
// references a missing or unavailable item; no partial order is ever stored.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	if req.CustomerName == "" {
		return nil, &ValidationError{Message: "customerName is required"}
	}
	if req.TableNumber < 1 {
		return nil, &ValidationError{Message: "tableNumber must be a positive integer"}
	}
	if len(req.Items) == 0 {
		return nil, &ValidationError{Message: "order must contain at least one item"}
	}

	var totalAmount float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))

	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, &ValidationError{Message: fmt.Sprintf("quantity for item %s must be at least 1", line.ItemID)}
		}

		menuItem, err := s.menu.GetByID(ctx, line.ItemID)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Entity: "Item", ID: line.ItemID}
		}
		if err != nil {
			return nil, err
		}
		if !menuItem.Available {
			return nil, &UnavailableError{Name: menuItem.Name}
		}

		totalAmount += menuItem.Price * float64(line.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ItemID:              menuItem.ID,
			Name:                menuItem.Name,
			Quantity:            line.Quantity,
			Price:               menuItem.Price,
			SpecialInstructions: line.SpecialInstructions,
			SpiceLevel:          line.SpiceLevel,
		})
	}

	order := &models.Order{
		ID:            primitive.NewObjectID(),
		OrderID:       newOrderID(),
		CustomerName:  req.CustomerName,
		TableNumber:   req.TableNumber,
		Items:         orderItems,
		TotalAmount:   totalAmount,
		Status:        models.StatusPending,
		PaymentMethod: defaultString(req.PaymentMethod, "cash"),
		OrderType:     defaultString(req.OrderType, "dine-in"),
		CreatedAt:     s.now(),
	}

	err := s.orders.Insert(ctx, order)
	if errors.Is(err, repositories.ErrDuplicateOrderID) {
		// Collisions are vanishingly rare; one regenerate-and-retry is
		// enough before surfacing a conflict.
		order.OrderID = newOrderID()
		err = s.orders.Insert(ctx, order)
		if errors.Is(err, repositories.ErrDuplicateOrderID) {
			return nil, &ConflictError{OrderID: order.OrderID}
		}
	}
	if err != nil {
		return nil, err
	}

	s.publish(notifications.EventNewOrder, order)
	return order, nil
}

// UpdateStatus moves an order to newStatus. With strict transitions enabled
// (the default) the move must be legal per the state machine; a repeated
// update to the current status is accepted as a no-op so that retries stay
// idempotent. acceptedAt and completedAt are set only on first entry into
// accepted and served respectively.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, newStatus models.OrderStatus) (*models.Order, error) {
	if !newStatus.IsValid() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid status %q", newStatus)}
	}

	order, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Entity: "Order"}
	}
	if err != nil {
		return nil, err
	}

	if s.strictTransitions && newStatus != order.Status {
		if err := statemachine.CanTransition(order.Status, newStatus); err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
	}

	order.Status = newStatus
	now := s.now()
	if newStatus == models.StatusAccepted && order.AcceptedAt == nil {
		order.AcceptedAt = &now
	}
	if newStatus == models.StatusServed && order.CompletedAt == nil {
		order.CompletedAt = &now
	}

	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Entity: "Order"}
		}
		return nil, err
	}

	s.publish(notifications.EventOrderUpdated, order)
	return order, nil
}

// List returns orders newest first, capped at 100. With todayOnly set the
// result is restricted to the local calendar day.
func (s *OrderService) List(ctx context.Context, todayOnly bool) ([]models.Order, error) {
	if todayOnly {
		from, to := dayBounds(s.now())
		return s.orders.ListBetween(ctx, from, to, maxOrdersPerList)
	}
	return s.orders.ListNewest(ctx, maxOrdersPerList)
}

// Stats computes today's dashboard counters. Cancelled orders count toward
// totals but are excluded from revenue.
func (s *OrderService) Stats(ctx context.Context) (*OrderStats, error) {
	from, to := dayBounds(s.now())
	orders, err := s.orders.ListBetween(ctx, from, to, 0)
	if err != nil {
		return nil, err
	}

	stats := &OrderStats{TotalOrders: len(orders), TodayOrders: len(orders)}
	for _, order := range orders {
		if order.Status == models.StatusPending {
			stats.PendingOrders++
		}
		if order.Status != models.StatusCancelled {
			stats.TotalRevenue += order.TotalAmount
		}
	}
	return stats, nil
}

// HourlyChart buckets today's non-cancelled orders into 24 hourly slots by
// the local hour of creation.
func (s *OrderService) HourlyChart(ctx context.Context) (*HourlyChart, error) {
	from, to := dayBounds(s.now())
	orders, err := s.orders.ListBetween(ctx, from, to, 0)
	if err != nil {
		return nil, err
	}

	chart := &HourlyChart{
		Labels:  make([]string, 24),
		Orders:  make([]int, 24),
		Revenue: make([]float64, 24),
	}
	for i := range chart.Labels {
		chart.Labels[i] = fmt.Sprintf("%02d:00", i)
	}
	for _, order := range orders {
		if order.Status == models.StatusCancelled {
			continue
		}
		hour := order.CreatedAt.In(from.Location()).Hour()
		chart.Orders[hour]++
		chart.Revenue[hour] += order.TotalAmount
	}
	return chart, nil
}

func (s *OrderService) publish(event string, order *models.Order) {
	if s.publisher == nil {
		log.Printf("notifications disabled, skipping %q for order %s", event, order.OrderID)
		return
	}
	s.publisher.Publish(event, order)
}

// newOrderID builds the human-readable identifier: ORD- plus the first eight
// hex characters of a v4 UUID, uppercased.
func newOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// dayBounds returns the local calendar day [00:00:00.000, 23:59:59.999]
// containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24*time.Hour - time.Millisecond)
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
