// Package sqlstore implements the persistence contract on the
// relational backend: the same logical schema as the record store,
// declared as tables with foreign keys and driven through GORM's
// parameterized statements. Partial updates become dynamic SET lists
// built from the patch's set fields.
package sqlstore

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"dispensary-pos/internal/model"
	"dispensary-pos/internal/store"
)

// Store is a relational store over a single GORM handle.
type Store struct {
	db *gorm.DB
}

// New wraps an already-opened database handle. Migration is the
// caller's concern (see pkg/database).
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

// patchFields guarantees a non-empty SET list so an all-nil patch still
// refreshes updated_at, matching the record-store merge behavior.
func patchFields(fields map[string]interface{}) map[string]interface{} {
	if len(fields) == 0 {
		fields = map[string]interface{}{}
	}
	fields["updated_at"] = time.Now().UTC()
	return fields
}

// Products

func (s *Store) InsertProduct(p *model.Product) (store.Result, error) {
	if err := s.db.Create(p).Error; err != nil {
		return store.Result{}, err
	}
	return store.Result{InsertedID: p.ID, Changed: true}, nil
}

func (s *Store) Products() ([]model.Product, error) {
	var products []model.Product
	if err := s.db.Order("name").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) ProductByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := s.db.First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *Store) UpdateProduct(id uint, patch model.ProductPatch) (store.Result, error) {
	result := s.db.Model(&model.Product{}).Where("id = ?", id).Updates(patchFields(patch.Fields()))
	if result.Error != nil {
		return store.Result{}, result.Error
	}
	return store.Result{InsertedID: id, Changed: result.RowsAffected > 0}, nil
}

func (s *Store) DeleteProduct(id uint) (store.Result, error) {
	result := s.db.Delete(&model.Product{}, id)
	if result.Error != nil {
		return store.Result{}, result.Error
	}
	return store.Result{InsertedID: id, Changed: result.RowsAffected > 0}, nil
}

// Customers

func (s *Store) InsertCustomer(c *model.Customer) (store.Result, error) {
	if err := s.db.Create(c).Error; err != nil {
		return store.Result{}, err
	}
	return store.Result{InsertedID: c.ID, Changed: true}, nil
}

func (s *Store) Customers() ([]model.Customer, error) {
	var customers []model.Customer
	if err := s.db.Order("id").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *Store) CustomerByID(id uint) (*model.Customer, error) {
	var customer model.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (s *Store) UpdateCustomer(id uint, patch model.CustomerPatch) (store.Result, error) {
	result := s.db.Model(&model.Customer{}).Where("id = ?", id).Updates(patchFields(patch.Fields()))
	if result.Error != nil {
		return store.Result{}, result.Error
	}
	return store.Result{InsertedID: id, Changed: result.RowsAffected > 0}, nil
}

func (s *Store) DeleteCustomer(id uint) (store.Result, error) {
	result := s.db.Delete(&model.Customer{}, id)
	if result.Error != nil {
		return store.Result{}, result.Error
	}
	return store.Result{InsertedID: id, Changed: result.RowsAffected > 0}, nil
}

// Employees

func (s *Store) InsertEmployee(e *model.Employee) (store.Result, error) {
	if err := s.db.Create(e).Error; err != nil {
		return store.Result{}, err
	}
	return store.Result{InsertedID: e.ID, Changed: true}, nil
}

func (s *Store) Employees() ([]model.Employee, error) {
	var employees []model.Employee
	if err := s.db.Order("id").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *Store) EmployeeByID(id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := s.db.First(&employee, id).Error; err != nil {
		return nil, translate(err)
	}
	return &employee, nil
}

func (s *Store) EmployeeByEmail(email string) (*model.Employee, error) {
	var employee model.Employee
	if err := s.db.Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, translate(err)
	}
	return &employee, nil
}

func (s *Store) UpdateEmployee(id uint, patch model.EmployeePatch) (store.Result, error) {
	result := s.db.Model(&model.Employee{}).Where("id = ?", id).Updates(patchFields(patch.Fields()))
	if result.Error != nil {
		return store.Result{}, result.Error
	}
	return store.Result{InsertedID: id, Changed: result.RowsAffected > 0}, nil
}

func (s *Store) DeleteEmployee(id uint) (store.Result, error) {
	result := s.db.Delete(&model.Employee{}, id)
	if result.Error != nil {
		return store.Result{}, result.Error
	}
	return store.Result{InsertedID: id, Changed: result.RowsAffected > 0}, nil
}

// Orders

func (s *Store) InsertOrder(o *model.Order) (store.Result, error) {
	if o.PaymentStatus == "" {
		o.PaymentStatus = model.PaymentPending
	}
	if err := s.db.Create(o).Error; err != nil {
		return store.Result{}, err
	}
	return store.Result{InsertedID: o.ID, Changed: true}, nil
}

func (s *Store) Orders() ([]model.Order, error) {
	var orders []model.Order
	if err := s.db.Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) OrderByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := s.db.First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *Store) InsertOrderItem(item *model.OrderItem) (store.Result, error) {
	if err := s.db.Create(item).Error; err != nil {
		return store.Result{}, err
	}
	return store.Result{InsertedID: item.ID, Changed: true}, nil
}

func (s *Store) OrderItems() ([]model.OrderItem, error) {
	var items []model.OrderItem
	if err := s.db.Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) OrderItemsByOrderID(orderID uint) ([]model.OrderItem, error) {
	var items []model.OrderItem
	if err := s.db.Where("order_id = ?", orderID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Inventory transactions

func (s *Store) InsertInventoryTransaction(tx *model.InventoryTransaction) (store.Result, error) {
	if err := s.db.Create(tx).Error; err != nil {
		return store.Result{}, err
	}
	return store.Result{InsertedID: tx.ID, Changed: true}, nil
}

func (s *Store) InventoryTransactions() ([]model.InventoryTransaction, error) {
	var transactions []model.InventoryTransaction
	if err := s.db.Order("id").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *Store) InventoryTransactionsByProductID(productID uint) ([]model.InventoryTransaction, error) {
	var transactions []model.InventoryTransaction
	if err := s.db.Where("product_id = ?", productID).Order("id").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// Catalog listings

func (s *Store) InsertListing(l *model.CatalogListing) (store.Result, error) {
	if err := s.db.Create(l).Error; err != nil {
		return store.Result{}, err
	}
	return store.Result{InsertedID: l.ID, Changed: true}, nil
}

func (s *Store) Listings() ([]model.CatalogListing, error) {
	var listings []model.CatalogListing
	if err := s.db.Order("id").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *Store) ListingByID(id uint) (*model.CatalogListing, error) {
	var listing model.CatalogListing
	if err := s.db.First(&listing, id).Error; err != nil {
		return nil, translate(err)
	}
	return &listing, nil
}

func (s *Store) UpdateListing(id uint, patch model.CatalogListingPatch) (store.Result, error) {
	result := s.db.Model(&model.CatalogListing{}).Where("id = ?", id).Updates(patchFields(patch.Fields()))
	if result.Error != nil {
		return store.Result{}, result.Error
	}
	return store.Result{InsertedID: id, Changed: result.RowsAffected > 0}, nil
}

func (s *Store) DeleteListing(id uint) (store.Result, error) {
	result := s.db.Delete(&model.CatalogListing{}, id)
	if result.Error != nil {
		return store.Result{}, result.Error
	}
	return store.Result{InsertedID: id, Changed: result.RowsAffected > 0}, nil
}

// Dispensaries

func (s *Store) InsertDispensary(d *model.Dispensary) (store.Result, error) {
	if d.Status == "" {
		d.Status = model.DispensaryActive
	}
	if err := s.db.Create(d).Error; err != nil {
		return store.Result{}, err
	}
	return store.Result{InsertedID: d.ID, Changed: true}, nil
}

func (s *Store) Dispensaries() ([]model.Dispensary, error) {
	var dispensaries []model.Dispensary
	if err := s.db.Order("id").Find(&dispensaries).Error; err != nil {
		return nil, err
	}
	return dispensaries, nil
}

func (s *Store) DispensaryByID(id uint) (*model.Dispensary, error) {
	var dispensary model.Dispensary
	if err := s.db.First(&dispensary, id).Error; err != nil {
		return nil, translate(err)
	}
	return &dispensary, nil
}

func (s *Store) UpdateDispensary(id uint, patch model.DispensaryPatch) (store.Result, error) {
	result := s.db.Model(&model.Dispensary{}).Where("id = ?", id).Updates(patchFields(patch.Fields()))
	if result.Error != nil {
		return store.Result{}, result.Error
	}
	return store.Result{InsertedID: id, Changed: result.RowsAffected > 0}, nil
}

func (s *Store) DeleteDispensary(id uint) (store.Result, error) {
	result := s.db.Delete(&model.Dispensary{}, id)
	if result.Error != nil {
		return store.Result{}, result.Error
	}
	return store.Result{InsertedID: id, Changed: result.RowsAffected > 0}, nil
}
