package apiclient

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// RegisterResponse is returned by POST /register.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	Message string     `json:"message"`
	User    RemoteUser `json:"user"`
}

// RemoteUser is a user record as the API returns it.
type RemoteUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// ProductFilter holds the query filters of GET /products.
type ProductFilter struct {
	Category string
	Gender   string
	Search   string
}

// RemoteProduct is a product row as the API returns it. Price is in whole
// currency units.
type RemoteProduct struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Gender      string  `json:"gender"`
	Collection  string  `json:"collection,omitempty"`
	Featured    bool    `json:"featured,omitempty"`
}

// Domain converts the row to a catalog product priced in cents.
func (p RemoteProduct) Domain() domain.Product {
	return domain.Product{
		ID:          strconv.FormatInt(p.ID, 10),
		Name:        p.Name,
		Description: p.Description,
		Price:       toCents(p.Price),
		Image:       p.Image,
		Category:    p.Category,
		Gender:      domain.Gender(p.Gender),
		Collection:  p.Collection,
		Featured:    p.Featured,
	}
}

// OrderItem is a line of POST /orders. Price is in whole currency units.
type OrderItem struct {
	ID       any     `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	UserID          any            `json:"user_id"`
	Items           []OrderItem    `json:"items"`
	ShippingAddress domain.Address `json:"shipping_address"`
}

// NewOrderRequest builds an order request from cart lines.
func NewOrderRequest(userID string, lines domain.Lines, address domain.Address) OrderRequest {
	items := make([]OrderItem, len(lines))
	for i, l := range lines {
		items[i] = OrderItem{
			ID:       numericRef(l.Product.ID),
			Quantity: l.Quantity,
			Price:    float64(l.Product.Price) / 100,
		}
	}
	return OrderRequest{UserID: numericRef(userID), Items: items, ShippingAddress: address}
}

// CreateOrderResponse is returned by POST /orders.
type CreateOrderResponse struct {
	Message string  `json:"message"`
	OrderID int64   `json:"order_id"`
	Total   float64 `json:"total"`
}

// RemoteOrder is an order row with its items.
type RemoteOrder struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
	Total           float64           `json:"total"`
	Status          string            `json:"status"`
	ShippingAddress json.RawMessage   `json:"shipping_address,omitempty"`
	CreatedAt       string            `json:"created_at"`
	Items           []RemoteOrderItem `json:"items"`
}

// RemoteOrderItem is an order_items row joined with its product.
type RemoteOrderItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
}

// WishlistEntry is a wishlist row joined with its product.
type WishlistEntry struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

type wishlistRequest struct {
	ProductID any `json:"product_id"`
}

// PaymentRequest is the body of POST /mpesa_payment.
type PaymentRequest struct {
	Phone  string `json:"phone"`
	Amount string `json:"amount"`
}

// PaymentResponse is the acknowledgement of an STK push. Response carries
// the raw provider reply.
type PaymentResponse struct {
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response,omitempty"`
}

// providerReply is the part of the provider reply that signals rejection.
type providerReply struct {
	ResponseCode string `json:"ResponseCode"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// MessageResponse is the generic {"message": "..."} reply.
type MessageResponse struct {
	Message string `json:"message"`
}

type productsEnvelope struct {
	Products []RemoteProduct `json:"products"`
}

type productEnvelope struct {
	Product RemoteProduct `json:"product"`
}

type ordersEnvelope struct {
	Orders []RemoteOrder `json:"orders"`
}

type wishlistEnvelope struct {
	Wishlist []WishlistEntry `json:"wishlist"`
}

func toCents(units float64) int64 {
	return int64(math.Round(units * 100))
}

// numericRef sends ids as JSON numbers when they are numeric, as the API
// keys rows by integer id.
func numericRef(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}
