package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

// DeliveryWindow is the time between placing an order and its estimated delivery.
const DeliveryWindow = 7 * 24 * time.Hour

// Address is a shipping address.
type Address struct {
	FullName      string `json:"full_name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	County        string `json:"county"`
	PostalCode    string `json:"postal_code"`
	PhoneNumber   string `json:"phone_number"`
}

// Order is an order placed from this session. TotalAmount is in cents and
// includes shipping.
type Order struct {
	ID                    string      `json:"id"`
	Items                 Lines       `json:"items"`
	TotalAmount           int64       `json:"total_amount"`
	Status                OrderStatus `json:"status"`
	TrackingNumber        string      `json:"tracking_number"`
	ShippingAddress       Address     `json:"shipping_address"`
	OrderDate             time.Time   `json:"order_date"`
	EstimatedDeliveryDate time.Time   `json:"estimated_delivery_date"`
}

// NewOrderID returns "ORD-" followed by six digits.
func NewOrderID(rng *rand.Rand) string {
	return fmt.Sprintf("ORD-%d", 100000+rng.IntN(900000))
}

// NewTrackingNumber returns "LUXE-TRACK-" followed by six digits.
func NewTrackingNumber(rng *rand.Rand) string {
	return fmt.Sprintf("LUXE-TRACK-%d", 100000+rng.IntN(900000))
}

// Step is one stage of the order progress bar.
type Step struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Steps returns the four progress stages for status. "Order Placed" is
// always complete.
func Steps(status OrderStatus) []Step {
	rank := map[OrderStatus]int{
		OrderPending:    0,
		OrderProcessing: 1,
		OrderShipped:    2,
		OrderDelivered:  3,
	}[status]

	return []Step{
		{Name: "Order Placed", Completed: true},
		{Name: "Processing", Completed: rank >= 1},
		{Name: "Shipped", Completed: rank >= 2},
		{Name: "Delivered", Completed: rank >= 3},
	}
}
