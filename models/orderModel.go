package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusPreparing, StatusReady, StatusServed, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a snapshot of a menu item at order time. Name and price are
// copied from the catalog, so later menu edits never change a placed order.
type OrderItem struct {
	ItemID              primitive.ObjectID `bson:"item_id" json:"itemId"`
	Name                string             `bson:"name" json:"name"`
	Quantity            int                `bson:"quantity" json:"quantity"`
	Price               float64            `bson:"price" json:"price"`
	SpecialInstructions string             `bson:"special_instructions,omitempty" json:"specialInstructions,omitempty"`
	SpiceLevel          string             `bson:"spice_level,omitempty" json:"spiceLevel,omitempty"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	OrderID       string             `bson:"order_id" json:"orderId"`
	CustomerName  string             `bson:"customer_name" json:"customerName"`
	TableNumber   int                `bson:"table_number" json:"tableNumber"`
	Items         []OrderItem        `bson:"items" json:"items"`
	TotalAmount   float64            `bson:"total_amount" json:"totalAmount"`
	Status        OrderStatus        `bson:"status" json:"status"`
	PaymentMethod string             `bson:"payment_method" json:"paymentMethod"`
	OrderType     string             `bson:"order_type" json:"orderType"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	AcceptedAt    *time.Time         `bson:"accepted_at,omitempty" json:"acceptedAt,omitempty"`
	CompletedAt   *time.Time         `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}
