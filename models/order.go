package models

import (
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// ParseOrderStatus validates a status string from the wire.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.TrimSpace(s)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusConfirmed:
		return OrderStatusConfirmed, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// OrderLine is a single cart row frozen into an order.
type OrderLine struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Qty   int    `json:"qty"`
	Image string `json:"image,omitempty"`
	Total int    `json:"total"`
}

// Order is the canonical customer order record. Immutable after creation
// except for Status.
type Order struct {
	ID           int64       `json:"id"`
	Reference    string      `json:"reference"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	ShippingType string      `json:"shippingType"`
	State        string      `json:"state,omitempty"`
	City         string      `json:"city,omitempty"`
	Address      string      `json:"address,omitempty"`
	Cart         []OrderLine `json:"cart"`
	Subtotal     int         `json:"subtotal"`
	DeliveryFee  int         `json:"deliveryFee"`
	Total        int         `json:"total"`
	Status       OrderStatus `json:"status"`
	PaystackRef  string      `json:"paystackRef,omitempty"`
	CreatedAt    string      `json:"createdAt"`
}

// OrderPayload is the loose wire shape checkout clients send. Older
// clients use "items" instead of "cart" and may omit reference, status
// and createdAt.
type OrderPayload struct {
	Reference    string      `json:"reference"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	ShippingType string      `json:"shippingType"`
	State        string      `json:"state"`
	City         string      `json:"city"`
	Address      string      `json:"address"`
	Cart         []OrderLine `json:"cart"`
	Items        []OrderLine `json:"items"`
	Subtotal     int         `json:"subtotal"`
	DeliveryFee  int         `json:"deliveryFee"`
	Total        int         `json:"total"`
	Status       string      `json:"status"`
	PaystackRef  string      `json:"paystackRef"`
	CreatedAt    string      `json:"createdAt"`
}

// OrderFromPayload adapts the wire payload into the canonical Order.
// The adapter is the only place the cart/items duality is handled;
// business logic downstream only ever sees Order.
func OrderFromPayload(p OrderPayload, id int64, now time.Time) Order {
	lines := p.Cart
	if len(lines) == 0 {
		lines = p.Items
	}
	for i := range lines {
		if lines[i].Total == 0 {
			lines[i].Total = lines[i].Price * lines[i].Qty
		}
	}

	reference := strings.TrimSpace(p.Reference)
	if reference == "" {
		reference = fmt.Sprintf("ORDER_%d", now.UnixMilli())
	}

	status, err := ParseOrderStatus(p.Status)
	if err != nil {
		status = OrderStatusPending
	}

	createdAt := strings.TrimSpace(p.CreatedAt)
	if createdAt == "" {
		createdAt = now.UTC().Format(time.RFC3339)
	}

	return Order{
		ID:           id,
		Reference:    reference,
		Name:         strings.TrimSpace(p.Name),
		Email:        strings.TrimSpace(p.Email),
		Phone:        strings.TrimSpace(p.Phone),
		ShippingType: strings.TrimSpace(p.ShippingType),
		State:        strings.TrimSpace(p.State),
		City:         strings.TrimSpace(p.City),
		Address:      strings.TrimSpace(p.Address),
		Cart:         lines,
		Subtotal:     p.Subtotal,
		DeliveryFee:  p.DeliveryFee,
		Total:        p.Total,
		Status:       status,
		PaystackRef:  strings.TrimSpace(p.PaystackRef),
		CreatedAt:    createdAt,
	}
}

// MatchesQuery reports whether the order matches a free-text admin
// search over reference, name, phone and email.
func (o *Order) MatchesQuery(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, field := range []string{o.Reference, o.Name, o.Phone, o.Email} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
