package checkout

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/kikelara/kikelara-backend-go/models"
	"github.com/kikelara/kikelara-backend-go/utils"
)

// ContactInfo is what the customer types into the checkout form.
type ContactInfo struct {
	Name  string
	Email string
	Phone string
}

// ShippingSelection is the chosen shipping type plus, for delivery, the
// destination.
type ShippingSelection struct {
	Type    string
	State   string
	City    string
	Address string
}

// CartItem is a line in the customer's cart.
type CartItem struct {
	ID    int64
	Name  string
	Price int
	Qty   int
	Image string
}

// ValidationError identifies the first missing or invalid checkout
// field. Surfaced inline to the customer, never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var phonePattern = regexp.MustCompile(`^[+]?\d{10,15}$`)

func validPhone(phone string) bool {
	cleaned := strings.Join(strings.Fields(phone), "")
	return phonePattern.MatchString(cleaned)
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// BuildOrder validates the checkout form and assembles an immutable
// order snapshot: subtotal summed over the cart, delivery fee resolved
// against the pricing document, total = subtotal + fee, and a
// time-based reference. It performs no persistence or payment.
func BuildOrder(contact ContactInfo, shipping ShippingSelection, cart []CartItem, pricing models.PricingDocument) (models.Order, error) {
	name := strings.TrimSpace(contact.Name)
	email := strings.TrimSpace(contact.Email)
	phone := strings.TrimSpace(contact.Phone)

	if name == "" {
		return models.Order{}, &ValidationError{Field: "name", Message: "please enter your full name"}
	}
	if !validEmail(email) {
		return models.Order{}, &ValidationError{Field: "email", Message: "please enter a valid email address"}
	}
	if !validPhone(phone) {
		return models.Order{}, &ValidationError{Field: "phone", Message: "please enter a valid phone number"}
	}
	if len(cart) == 0 {
		return models.Order{}, &ValidationError{Field: "cart", Message: "your cart is empty"}
	}

	shippingType := strings.TrimSpace(shipping.Type)
	if shippingType == "" {
		shippingType = models.ShippingPickup
	}

	state := strings.TrimSpace(shipping.State)
	city := strings.TrimSpace(shipping.City)
	address := strings.TrimSpace(shipping.Address)
	if shippingType == models.ShippingDelivery {
		if state == "" {
			return models.Order{}, &ValidationError{Field: "state", Message: "please select your state for delivery"}
		}
		if city == "" {
			return models.Order{}, &ValidationError{Field: "city", Message: "please select your city for delivery"}
		}
		if address == "" {
			return models.Order{}, &ValidationError{Field: "address", Message: "please enter your delivery address"}
		}
	}

	subtotal := 0
	lines := make([]models.OrderLine, 0, len(cart))
	for _, item := range cart {
		lineTotal := item.Price * item.Qty
		subtotal += lineTotal
		lines = append(lines, models.OrderLine{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
			Qty:   item.Qty,
			Image: item.Image,
			Total: lineTotal,
		})
	}

	now := time.Now()
	fee := pricing.ResolveDeliveryFee(shippingType, state, city)

	return models.Order{
		Reference:    utils.NewOrderReference(now),
		Name:         name,
		Email:        email,
		Phone:        phone,
		ShippingType: shippingType,
		State:        state,
		City:         city,
		Address:      address,
		Cart:         lines,
		Subtotal:     subtotal,
		DeliveryFee:  fee,
		Total:        subtotal + fee,
		Status:       models.OrderStatusPending,
		CreatedAt:    now.UTC().Format(time.RFC3339),
	}, nil
}
