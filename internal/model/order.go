package model

import "time"

// Payment statuses carried on an order. "pending" is the insert default.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Order represents a completed or pending sale. Orders are append-only
// apart from their payment status, so they carry no updated_at.
type Order struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	CustomerID      *uint     `json:"customer_id,omitempty" gorm:"index"`
	EmployeeID      *uint     `json:"employee_id,omitempty" gorm:"index"`
	TotalAmount     float64   `json:"total_amount" gorm:"not null"`
	PaymentMethod   string    `json:"payment_method" gorm:"type:varchar(50);not null"`
	PaymentStatus   string    `json:"payment_status" gorm:"type:varchar(50);not null;default:'pending'"`
	StripePaymentID string    `json:"stripe_payment_id,omitempty" gorm:"type:varchar(255)"`
	CreatedAt       time.Time `json:"created_at"`

	Customer *Customer `json:"-" gorm:"foreignKey:CustomerID"`
	Employee *Employee `json:"-" gorm:"foreignKey:EmployeeID"`
}

// OrderItem is one product line on an order. total_price is expected to
// equal quantity*unit_price but is stored as given.
type OrderItem struct {
	ID         uint    `json:"id" gorm:"primarykey"`
	OrderID    uint    `json:"order_id" gorm:"index;not null"`
	ProductID  uint    `json:"product_id" gorm:"index;not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	UnitPrice  float64 `json:"unit_price" gorm:"not null"`
	TotalPrice float64 `json:"total_price" gorm:"not null"`

	Order   *Order   `json:"-" gorm:"foreignKey:OrderID"`
	Product *Product `json:"-" gorm:"foreignKey:ProductID"`
}
