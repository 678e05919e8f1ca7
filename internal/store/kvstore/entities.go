package kvstore

import (
	"sort"
	"time"

	"dispensary-pos/internal/model"
	"dispensary-pos/internal/store"
)

// Products

func (s *Store) InsertProduct(p *model.Product) (store.Result, error) {
	return insert(s, store.TableProducts, p, func(rec *model.Product, id uint, now time.Time) {
		rec.ID = id
		rec.CreatedAt = now
		rec.UpdatedAt = now
	})
}

// Products returns the catalog sorted by name.
func (s *Store) Products() ([]model.Product, error) {
	products, err := list[model.Product](s, store.TableProducts)
	if err != nil {
		return nil, err
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

func (s *Store) ProductByID(id uint) (*model.Product, error) {
	return getByID(s, store.TableProducts, id, func(p model.Product) uint { return p.ID })
}

func (s *Store) UpdateProduct(id uint, patch model.ProductPatch) (store.Result, error) {
	return update(s, store.TableProducts, id, func(p model.Product) uint { return p.ID },
		func(p *model.Product, now time.Time) {
			patch.Apply(p)
			p.UpdatedAt = now
		})
}

func (s *Store) DeleteProduct(id uint) (store.Result, error) {
	return remove(s, store.TableProducts, id, func(p model.Product) uint { return p.ID })
}

// Customers

func (s *Store) InsertCustomer(c *model.Customer) (store.Result, error) {
	return insert(s, store.TableCustomers, c, func(rec *model.Customer, id uint, now time.Time) {
		rec.ID = id
		rec.CreatedAt = now
		rec.UpdatedAt = now
	})
}

func (s *Store) Customers() ([]model.Customer, error) {
	return list[model.Customer](s, store.TableCustomers)
}

func (s *Store) CustomerByID(id uint) (*model.Customer, error) {
	return getByID(s, store.TableCustomers, id, func(c model.Customer) uint { return c.ID })
}

func (s *Store) UpdateCustomer(id uint, patch model.CustomerPatch) (store.Result, error) {
	return update(s, store.TableCustomers, id, func(c model.Customer) uint { return c.ID },
		func(c *model.Customer, now time.Time) {
			patch.Apply(c)
			c.UpdatedAt = now
		})
}

func (s *Store) DeleteCustomer(id uint) (store.Result, error) {
	return remove(s, store.TableCustomers, id, func(c model.Customer) uint { return c.ID })
}

// Employees

func (s *Store) InsertEmployee(e *model.Employee) (store.Result, error) {
	return insert(s, store.TableEmployees, e, func(rec *model.Employee, id uint, now time.Time) {
		rec.ID = id
		rec.CreatedAt = now
		rec.UpdatedAt = now
	})
}

func (s *Store) Employees() ([]model.Employee, error) {
	return list[model.Employee](s, store.TableEmployees)
}

func (s *Store) EmployeeByID(id uint) (*model.Employee, error) {
	return getByID(s, store.TableEmployees, id, func(e model.Employee) uint { return e.ID })
}

func (s *Store) EmployeeByEmail(email string) (*model.Employee, error) {
	employees, err := s.Employees()
	if err != nil {
		return nil, err
	}
	for i := range employees {
		if employees[i].Email == email {
			return &employees[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateEmployee(id uint, patch model.EmployeePatch) (store.Result, error) {
	return update(s, store.TableEmployees, id, func(e model.Employee) uint { return e.ID },
		func(e *model.Employee, now time.Time) {
			patch.Apply(e)
			e.UpdatedAt = now
		})
}

func (s *Store) DeleteEmployee(id uint) (store.Result, error) {
	return remove(s, store.TableEmployees, id, func(e model.Employee) uint { return e.ID })
}

// Orders

func (s *Store) InsertOrder(o *model.Order) (store.Result, error) {
	if o.PaymentStatus == "" {
		o.PaymentStatus = model.PaymentPending
	}
	return insert(s, store.TableOrders, o, func(rec *model.Order, id uint, now time.Time) {
		rec.ID = id
		rec.CreatedAt = now
	})
}

func (s *Store) Orders() ([]model.Order, error) {
	return list[model.Order](s, store.TableOrders)
}

func (s *Store) OrderByID(id uint) (*model.Order, error) {
	return getByID(s, store.TableOrders, id, func(o model.Order) uint { return o.ID })
}

func (s *Store) InsertOrderItem(item *model.OrderItem) (store.Result, error) {
	return insert(s, store.TableOrderItems, item, func(rec *model.OrderItem, id uint, now time.Time) {
		rec.ID = id
	})
}

func (s *Store) OrderItems() ([]model.OrderItem, error) {
	return list[model.OrderItem](s, store.TableOrderItems)
}

func (s *Store) OrderItemsByOrderID(orderID uint) ([]model.OrderItem, error) {
	items, err := s.OrderItems()
	if err != nil {
		return nil, err
	}
	matched := items[:0:0]
	for _, item := range items {
		if item.OrderID == orderID {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// Inventory transactions

func (s *Store) InsertInventoryTransaction(tx *model.InventoryTransaction) (store.Result, error) {
	return insert(s, store.TableInventory, tx, func(rec *model.InventoryTransaction, id uint, now time.Time) {
		rec.ID = id
		rec.CreatedAt = now
	})
}

func (s *Store) InventoryTransactions() ([]model.InventoryTransaction, error) {
	return list[model.InventoryTransaction](s, store.TableInventory)
}

func (s *Store) InventoryTransactionsByProductID(productID uint) ([]model.InventoryTransaction, error) {
	transactions, err := s.InventoryTransactions()
	if err != nil {
		return nil, err
	}
	matched := transactions[:0:0]
	for _, tx := range transactions {
		if tx.ProductID == productID {
			matched = append(matched, tx)
		}
	}
	return matched, nil
}

// Catalog listings

func (s *Store) InsertListing(l *model.CatalogListing) (store.Result, error) {
	return insert(s, store.TableListings, l, func(rec *model.CatalogListing, id uint, now time.Time) {
		rec.ID = id
		rec.CreatedAt = now
		rec.UpdatedAt = now
	})
}

func (s *Store) Listings() ([]model.CatalogListing, error) {
	return list[model.CatalogListing](s, store.TableListings)
}

func (s *Store) ListingByID(id uint) (*model.CatalogListing, error) {
	return getByID(s, store.TableListings, id, func(l model.CatalogListing) uint { return l.ID })
}

func (s *Store) UpdateListing(id uint, patch model.CatalogListingPatch) (store.Result, error) {
	return update(s, store.TableListings, id, func(l model.CatalogListing) uint { return l.ID },
		func(l *model.CatalogListing, now time.Time) {
			patch.Apply(l)
			l.UpdatedAt = now
		})
}

func (s *Store) DeleteListing(id uint) (store.Result, error) {
	return remove(s, store.TableListings, id, func(l model.CatalogListing) uint { return l.ID })
}

// Dispensaries

func (s *Store) InsertDispensary(d *model.Dispensary) (store.Result, error) {
	if d.Status == "" {
		d.Status = model.DispensaryActive
	}
	return insert(s, store.TableDispensaries, d, func(rec *model.Dispensary, id uint, now time.Time) {
		rec.ID = id
		rec.CreatedAt = now
		rec.UpdatedAt = now
	})
}

func (s *Store) Dispensaries() ([]model.Dispensary, error) {
	return list[model.Dispensary](s, store.TableDispensaries)
}

func (s *Store) DispensaryByID(id uint) (*model.Dispensary, error) {
	return getByID(s, store.TableDispensaries, id, func(d model.Dispensary) uint { return d.ID })
}

func (s *Store) UpdateDispensary(id uint, patch model.DispensaryPatch) (store.Result, error) {
	return update(s, store.TableDispensaries, id, func(d model.Dispensary) uint { return d.ID },
		func(d *model.Dispensary, now time.Time) {
			patch.Apply(d)
			d.UpdatedAt = now
		})
}

func (s *Store) DeleteDispensary(id uint) (store.Result, error) {
	return remove(s, store.TableDispensaries, id, func(d model.Dispensary) uint { return d.ID })
}
