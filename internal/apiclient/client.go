// Package apiclient talks to the storefront REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
	"github.com/Sule971/luxe-vogue-boutique/pkg/httpclient"
	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
	"github.com/Sule971/luxe-vogue-boutique/pkg/middleware"
)

// ServiceName names the API in errors, logs and the circuit breaker.
const ServiceName = "storefront-api"

// CircuitOpenFallback is the breaker fallback: it answers with a retry hint
// instead of the raw open-state error.
func CircuitOpenFallback(_ context.Context, _ error) (*http.Response, error) {
	return nil, apperrors.ServiceUnavailable("Our store is temporarily unavailable. Please try again shortly.")
}

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client calls the storefront API. Failed calls are returned to the caller
// and never retried here.
type Client struct {
	http    HTTPDoer
	baseURL string
	logger  *slog.Logger
}

// New creates a client for the API rooted at baseURL, e.g.
// "https://shop.example.com/api".
func New(doer HTTPDoer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// do sends a JSON request and decodes a 2xx reply into out when out is not
// nil. Non-2xx replies become AppErrors carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader = http.NoBody
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.CorrelationHeader, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		logger.WithContext(ctx, c.logger).WarnContext(ctx, "storefront api call failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("call %s %s: %w", method, path, httpclient.AsAppError(err, ServiceName))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("call %s %s: %w", method, path, httpclient.ParseResponseError(resp, ServiceName))
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// RegisterUser creates an account.
func (c *Client) RegisterUser(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoginUser checks credentials and returns the user record.
func (c *Client) LoginUser(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProducts returns products matching the filter.
func (c *Client) ListProducts(ctx context.Context, filter ProductFilter) ([]RemoteProduct, error) {
	q := url.Values{}
	for k, v := range map[string]string{"category": filter.Category, "gender": filter.Gender, "search": filter.Search} {
		if v != "" {
			q.Set(k, v)
		}
	}

	var env productsEnvelope
	if err := c.do(ctx, http.MethodGet, "/products", q, nil, &env); err != nil {
		return nil, err
	}
	return env.Products, nil
}

// GetProduct returns a single product. A missing product is a NOT_FOUND AppError.
func (c *Client) GetProduct(ctx context.Context, productID string) (*RemoteProduct, error) {
	var env productEnvelope
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(productID), nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Product, nil
}

// CreateOrder submits an order.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*CreateOrderResponse, error) {
	var resp CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetUserOrders returns the user's orders, newest first.
func (c *Client) GetUserOrders(ctx context.Context, userID string) ([]RemoteOrder, error) {
	var env ordersEnvelope
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(userID), nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Orders, nil
}

// GetWishlist returns the user's saved products.
func (c *Client) GetWishlist(ctx context.Context, userID string) ([]WishlistEntry, error) {
	var env wishlistEnvelope
	if err := c.do(ctx, http.MethodGet, "/wishlist/"+url.PathEscape(userID), nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Wishlist, nil
}

// AddToWishlist saves a product for the user. Adding a saved product succeeds.
func (c *Client) AddToWishlist(ctx context.Context, userID, productID string) error {
	return c.do(ctx, http.MethodPost, "/wishlist/"+url.PathEscape(userID), nil,
		wishlistRequest{ProductID: numericRef(productID)}, nil)
}

// RemoveFromWishlist removes a saved product. The API reads the product id
// from the DELETE body.
func (c *Client) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	return c.do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(userID), nil,
		wishlistRequest{ProductID: numericRef(productID)}, nil)
}

// InitiatePayment sends an M-Pesa STK push for amount to phone. A reply the
// provider marked as rejected is returned as a PAYMENT_FAILED AppError with
// the provider's message.
func (c *Client) InitiatePayment(ctx context.Context, phone, amount string) (*PaymentResponse, error) {
	var resp PaymentResponse
	if err := c.do(ctx, http.MethodPost, "/mpesa_payment", nil, PaymentRequest{Phone: phone, Amount: amount}, &resp); err != nil {
		return nil, err
	}

	if len(resp.Response) > 0 {
		var reply providerReply
		if json.Unmarshal(resp.Response, &reply) == nil {
			if reply.ErrorMessage != "" {
				return nil, apperrors.PaymentFailed(reply.ErrorMessage)
			}
			if reply.ResponseCode != "" && reply.ResponseCode != "0" {
				return nil, apperrors.PaymentFailed("The payment request was declined")
			}
		}
	}

	logger.WithContext(ctx, c.logger).InfoContext(ctx, "payment initiated",
		slog.String("amount", amount),
	)
	return &resp, nil
}
