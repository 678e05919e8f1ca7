// Package pos holds the register-side cart state. Carts are ephemeral:
// they live in process memory and drain on checkout without writing an
// order record, matching the register's current behavior.
package pos

import (
	"errors"
	"sync"
	"time"

	"dispensary-pos/internal/model"
)

// Payment methods accepted at the register.
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
)

var (
	// ErrStockLimit rejects an add or quantity change that would exceed
	// the product's current stock. The cart is left unchanged.
	ErrStockLimit = errors.New("cannot add more items than available in stock")
	// ErrEmptyCart rejects checkout of an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnknownPayment rejects payment methods other than cash/credit.
	ErrUnknownPayment = errors.New("unknown payment method")
)

// Item is one cart line: a snapshot of the product at add time plus a
// quantity.
type Item struct {
	Product  model.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

// Receipt summarizes a completed checkout.
type Receipt struct {
	Items         []Item    `json:"items"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	CheckedOutAt  time.Time `json:"checked_out_at"`
}

// Register is the cart for one terminal. Lines keep add order.
type Register struct {
	mu    sync.Mutex
	items []Item
}

// AddProduct adds one unit of the product, incrementing the existing
// line when present. Quantity is capped at the product's stock.
func (r *Register) AddProduct(p model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].Product.ID == p.ID {
			if r.items[i].Quantity >= p.StockQuantity {
				return ErrStockLimit
			}
			r.items[i].Quantity++
			return nil
		}
	}
	if p.StockQuantity < 1 {
		return ErrStockLimit
	}
	r.items = append(r.items, Item{Product: p, Quantity: 1})
	return nil
}

// SetQuantity replaces a line's quantity. Zero removes the line; a
// quantity above the snapshotted stock is rejected.
func (r *Register) SetQuantity(productID uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].Product.ID != productID {
			continue
		}
		if quantity == 0 {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
		if quantity < 0 || quantity > r.items[i].Product.StockQuantity {
			return ErrStockLimit
		}
		r.items[i].Quantity = quantity
		return nil
	}
	return nil
}

// Remove drops the line for productID, if present.
func (r *Register) Remove(productID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].Product.ID == productID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the cart lines in add order.
func (r *Register) Items() []Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]Item, len(r.items))
	copy(items, r.items)
	return items
}

// Total is the running sum of unit price times quantity.
func (r *Register) Total() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return total(r.items)
}

func total(items []Item) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Product.Price * float64(item.Quantity)
	}
	return sum
}

// Checkout computes the total, drains the cart, and returns a receipt.
// No order record is written; the register's order history comes from
// back-office entry, not from checkout.
func (r *Register) Checkout(paymentMethod string) (Receipt, error) {
	if paymentMethod != PaymentCash && paymentMethod != PaymentCredit {
		return Receipt{}, ErrUnknownPayment
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	receipt := Receipt{
		Items:         r.items,
		Total:         total(r.items),
		PaymentMethod: paymentMethod,
		CheckedOutAt:  time.Now().UTC(),
	}
	r.items = nil
	return receipt, nil
}

// Manager hands out one cart per register name.
type Manager struct {
	mu        sync.Mutex
	registers map[string]*Register
}

func NewManager() *Manager {
	return &Manager{registers: make(map[string]*Register)}
}

// Register returns the cart for the named terminal, creating it on
// first use.
func (m *Manager) Register(name string) *Register {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.registers[name]
	if !ok {
		r = &Register{}
		m.registers[name] = r
	}
	return r
}
