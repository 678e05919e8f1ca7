package store

import (
	"errors"

	"dispensary-pos/internal/model"
)

// ErrNotFound is returned by the get-by-id operations when no record
// carries the requested id.
var ErrNotFound = errors.New("record not found")

// Table names shared by both backends and the export surface.
const (
	TableProducts     = "products"
	TableCustomers    = "customers"
	TableEmployees    = "employees"
	TableOrders       = "orders"
	TableOrderItems   = "order_items"
	TableInventory    = "inventory_transactions"
	TableListings     = "weedmaps_products"
	TableDispensaries = "dispensaries"
)

// Result reports the outcome of a mutating store operation. Updates and
// deletes aimed at a missing id come back with Changed false rather
// than an error.
type Result struct {
	InsertedID uint `json:"inserted_id,omitempty"`
	Changed    bool `json:"changed"`
}

type ProductStore interface {
	InsertProduct(p *model.Product) (Result, error)
	Products() ([]model.Product, error)
	ProductByID(id uint) (*model.Product, error)
	UpdateProduct(id uint, patch model.ProductPatch) (Result, error)
	DeleteProduct(id uint) (Result, error)
}

type CustomerStore interface {
	InsertCustomer(c *model.Customer) (Result, error)
	Customers() ([]model.Customer, error)
	CustomerByID(id uint) (*model.Customer, error)
	UpdateCustomer(id uint, patch model.CustomerPatch) (Result, error)
	DeleteCustomer(id uint) (Result, error)
}

type EmployeeStore interface {
	InsertEmployee(e *model.Employee) (Result, error)
	Employees() ([]model.Employee, error)
	EmployeeByID(id uint) (*model.Employee, error)
	EmployeeByEmail(email string) (*model.Employee, error)
	UpdateEmployee(id uint, patch model.EmployeePatch) (Result, error)
	DeleteEmployee(id uint) (Result, error)
}

type OrderStore interface {
	InsertOrder(o *model.Order) (Result, error)
	Orders() ([]model.Order, error)
	OrderByID(id uint) (*model.Order, error)
	InsertOrderItem(item *model.OrderItem) (Result, error)
	OrderItems() ([]model.OrderItem, error)
	OrderItemsByOrderID(orderID uint) ([]model.OrderItem, error)
}

type InventoryStore interface {
	InsertInventoryTransaction(tx *model.InventoryTransaction) (Result, error)
	InventoryTransactions() ([]model.InventoryTransaction, error)
	InventoryTransactionsByProductID(productID uint) ([]model.InventoryTransaction, error)
}

type ListingStore interface {
	InsertListing(l *model.CatalogListing) (Result, error)
	Listings() ([]model.CatalogListing, error)
	ListingByID(id uint) (*model.CatalogListing, error)
	UpdateListing(id uint, patch model.CatalogListingPatch) (Result, error)
	DeleteListing(id uint) (Result, error)
}

type DispensaryStore interface {
	InsertDispensary(d *model.Dispensary) (Result, error)
	Dispensaries() ([]model.Dispensary, error)
	DispensaryByID(id uint) (*model.Dispensary, error)
	UpdateDispensary(id uint, patch model.DispensaryPatch) (Result, error)
	DeleteDispensary(id uint) (Result, error)
}

// Store is the full persistence surface. A single handle is built at
// startup and handed to every consumer.
type Store interface {
	ProductStore
	CustomerStore
	EmployeeStore
	OrderStore
	InventoryStore
	ListingStore
	DispensaryStore

	Close() error
}
