package model

import "time"

// Inventory transaction types.
const (
	TransactionSale       = "sale"
	TransactionRestock    = "restock"
	TransactionAdjustment = "adjustment"
)

// InventoryTransaction records a single stock movement for a product.
type InventoryTransaction struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	ProductID       uint      `json:"product_id" gorm:"index;not null"`
	EmployeeID      *uint     `json:"employee_id,omitempty" gorm:"index"`
	TransactionType string    `json:"transaction_type" gorm:"type:varchar(50);not null"`
	QuantityChange  int       `json:"quantity_change" gorm:"not null"`
	Notes           string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`

	Product  *Product  `json:"-" gorm:"foreignKey:ProductID"`
	Employee *Employee `json:"-" gorm:"foreignKey:EmployeeID"`
}
