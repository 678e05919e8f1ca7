package kvstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispensary-pos/internal/model"
	"dispensary-pos/internal/store"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleProduct(name string) *model.Product {
	return &model.Product{
		Name:          name,
		Description:   "flower, indoor grown",
		Price:         12.5,
		StockQuantity: 20,
		Category:      "flower",
		StrainType:    "indica",
		THCContent:    21.4,
		CBDContent:    0.3,
	}
}

func TestInsertProductRoundTrip(t *testing.T) {
	s := newStore(t)

	p := sampleProduct("Blue Dream")
	result, err := s.InsertProduct(p)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, uint(1), result.InsertedID)

	got, err := s.ProductByID(result.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Dream", got.Name)
	assert.Equal(t, 12.5, got.Price)
	assert.Equal(t, 20, got.StockQuantity)
	assert.Equal(t, "indica", got.StrainType)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestProductsSortedByName(t *testing.T) {
	s := newStore(t)

	_, err := s.InsertProduct(sampleProduct("Banana Kush"))
	require.NoError(t, err)
	_, err = s.InsertProduct(sampleProduct("Afghan Haze"))
	require.NoError(t, err)

	products, err := s.Products()
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Afghan Haze", products[0].Name)
	assert.Equal(t, "Banana Kush", products[1].Name)
}

func TestCustomersKeepInsertionOrder(t *testing.T) {
	s := newStore(t)

	_, err := s.InsertCustomer(&model.Customer{FirstName: "Zoe", LastName: "Ward"})
	require.NoError(t, err)
	_, err = s.InsertCustomer(&model.Customer{FirstName: "Ana", LastName: "Brook"})
	require.NoError(t, err)

	customers, err := s.Customers()
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Zoe", customers[0].FirstName)
	assert.Equal(t, "Ana", customers[1].FirstName)
}

func TestEmptyTableListsEmpty(t *testing.T) {
	s := newStore(t)

	products, err := s.Products()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestUpdateProductRefreshesUpdatedAt(t *testing.T) {
	s := newStore(t)

	result, err := s.InsertProduct(sampleProduct("Gelato"))
	require.NoError(t, err)
	before, err := s.ProductByID(result.InsertedID)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	price := 15.0
	updated, err := s.UpdateProduct(result.InsertedID, model.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.True(t, updated.Changed)

	after, err := s.ProductByID(result.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, 15.0, after.Price)
	// Untouched fields survive the merge
	assert.Equal(t, "Gelato", after.Name)
	assert.Equal(t, 20, after.StockQuantity)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	s := newStore(t)

	name := "Ghost"
	result, err := s.UpdateProduct(42, model.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestDeleteProduct(t *testing.T) {
	s := newStore(t)

	result, err := s.InsertProduct(sampleProduct("Sour Diesel"))
	require.NoError(t, err)

	deleted, err := s.DeleteProduct(result.InsertedID)
	require.NoError(t, err)
	assert.True(t, deleted.Changed)

	_, err = s.ProductByID(result.InsertedID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again is a zero-change no-op, not a fault
	deleted, err = s.DeleteProduct(result.InsertedID)
	require.NoError(t, err)
	assert.False(t, deleted.Changed)
}

func TestCounterNeverReusesIDs(t *testing.T) {
	s := newStore(t)

	var ids []uint
	for _, name := range []string{"A", "B", "C"} {
		result, err := s.InsertProduct(sampleProduct(name))
		require.NoError(t, err)
		ids = append(ids, result.InsertedID)
	}
	assert.Equal(t, []uint{1, 2, 3}, ids)

	_, err := s.DeleteProduct(2)
	require.NoError(t, err)
	_, err = s.DeleteProduct(3)
	require.NoError(t, err)

	result, err := s.InsertProduct(sampleProduct("D"))
	require.NoError(t, err)
	assert.Equal(t, uint(4), result.InsertedID)
}

func TestEmployeeByEmail(t *testing.T) {
	s := newStore(t)

	_, err := s.InsertEmployee(&model.Employee{
		FirstName:    "Dana",
		LastName:     "Reyes",
		Email:        "dana@example.com",
		Role:         model.RoleManager,
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	employee, err := s.EmployeeByEmail("dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, employee.Role)

	_, err = s.EmployeeByEmail("nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOrderDefaultsToPendingStatus(t *testing.T) {
	s := newStore(t)

	order := &model.Order{TotalAmount: 30, PaymentMethod: "cash"}
	result, err := s.InsertOrder(order)
	require.NoError(t, err)

	got, err := s.OrderByID(result.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, got.PaymentStatus)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestOrderItemsByOrderID(t *testing.T) {
	s := newStore(t)

	first, err := s.InsertOrder(&model.Order{TotalAmount: 10, PaymentMethod: "cash"})
	require.NoError(t, err)
	second, err := s.InsertOrder(&model.Order{TotalAmount: 20, PaymentMethod: "credit"})
	require.NoError(t, err)

	for _, item := range []model.OrderItem{
		{OrderID: first.InsertedID, ProductID: 1, Quantity: 1, UnitPrice: 10, TotalPrice: 10},
		{OrderID: second.InsertedID, ProductID: 2, Quantity: 2, UnitPrice: 10, TotalPrice: 20},
		{OrderID: first.InsertedID, ProductID: 3, Quantity: 1, UnitPrice: 5, TotalPrice: 5},
	} {
		item := item
		_, err := s.InsertOrderItem(&item)
		require.NoError(t, err)
	}

	items, err := s.OrderItemsByOrderID(first.InsertedID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint(1), items[0].ProductID)
	assert.Equal(t, uint(3), items[1].ProductID)
}

func TestInventoryTransactionsByProductID(t *testing.T) {
	s := newStore(t)

	for _, tx := range []model.InventoryTransaction{
		{ProductID: 1, TransactionType: model.TransactionRestock, QuantityChange: 10},
		{ProductID: 2, TransactionType: model.TransactionSale, QuantityChange: -1},
		{ProductID: 1, TransactionType: model.TransactionSale, QuantityChange: -2},
	} {
		tx := tx
		_, err := s.InsertInventoryTransaction(&tx)
		require.NoError(t, err)
	}

	transactions, err := s.InventoryTransactionsByProductID(1)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, 10, transactions[0].QuantityChange)
	assert.Equal(t, -2, transactions[1].QuantityChange)
}

func TestDispensaryStatusDefaultsToActive(t *testing.T) {
	s := newStore(t)

	result, err := s.InsertDispensary(&model.Dispensary{Name: "Green Door", City: "Denver"})
	require.NoError(t, err)

	dispensary, err := s.DispensaryByID(result.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, model.DispensaryActive, dispensary.Status)
}

func TestListingUpdate(t *testing.T) {
	s := newStore(t)

	result, err := s.InsertListing(&model.CatalogListing{Name: "OG Kush", Published: false})
	require.NoError(t, err)

	published := true
	updated, err := s.UpdateListing(result.InsertedID, model.CatalogListingPatch{Published: &published})
	require.NoError(t, err)
	assert.True(t, updated.Changed)

	listing, err := s.ListingByID(result.InsertedID)
	require.NoError(t, err)
	assert.True(t, listing.Published)
	assert.Equal(t, "OG Kush", listing.Name)
}

func TestCountersAreIndependentPerTable(t *testing.T) {
	s := newStore(t)

	p, err := s.InsertProduct(sampleProduct("A"))
	require.NoError(t, err)
	c, err := s.InsertCustomer(&model.Customer{FirstName: "Jo", LastName: "Lee"})
	require.NoError(t, err)

	assert.Equal(t, uint(1), p.InsertedID)
	assert.Equal(t, uint(1), c.InsertedID)
}
