package sqlstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dispensary-pos/internal/model"
	"dispensary-pos/internal/store"
	"dispensary-pos/pkg/database"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pos.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	s := New(db)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertProductRoundTrip(t *testing.T) {
	s := newStore(t)

	result, err := s.InsertProduct(&model.Product{
		Name:          "Blue Dream",
		Price:         12.5,
		StockQuantity: 20,
		Category:      "flower",
	})
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.NotZero(t, result.InsertedID)

	got, err := s.ProductByID(result.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Dream", got.Name)
	assert.Equal(t, 12.5, got.Price)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestProductsSortedByName(t *testing.T) {
	s := newStore(t)

	_, err := s.InsertProduct(&model.Product{Name: "Banana Kush", Price: 10})
	require.NoError(t, err)
	_, err = s.InsertProduct(&model.Product{Name: "Afghan Haze", Price: 10})
	require.NoError(t, err)

	products, err := s.Products()
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Afghan Haze", products[0].Name)
	assert.Equal(t, "Banana Kush", products[1].Name)
}

func TestGetMissingProduct(t *testing.T) {
	s := newStore(t)

	_, err := s.ProductByID(42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateProductPartialPatch(t *testing.T) {
	s := newStore(t)

	result, err := s.InsertProduct(&model.Product{Name: "Gelato", Price: 12, StockQuantity: 5})
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
	assert.Equal(t, "Gelato", after.Name)
	assert.Equal(t, 5, after.StockQuantity)
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

	result, err := s.InsertProduct(&model.Product{Name: "Sour Diesel", Price: 9})
	require.NoError(t, err)

	deleted, err := s.DeleteProduct(result.InsertedID)
	require.NoError(t, err)
	assert.True(t, deleted.Changed)

	_, err = s.ProductByID(result.InsertedID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	deleted, err = s.DeleteProduct(result.InsertedID)
	require.NoError(t, err)
	assert.False(t, deleted.Changed)
}

func TestEmployeeByEmail(t *testing.T) {
	s := newStore(t)

	_, err := s.InsertEmployee(&model.Employee{
		FirstName:    "Dana",
		LastName:     "Reyes",
		Email:        "dana@example.com",
		Role:         model.RoleBudtender,
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	employee, err := s.EmployeeByEmail("dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Dana", employee.FirstName)

	_, err = s.EmployeeByEmail("nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDuplicateEmployeeEmailRejected(t *testing.T) {
	s := newStore(t)

	_, err := s.InsertEmployee(&model.Employee{
		FirstName: "Dana", LastName: "Reyes",
		Email: "dana@example.com", Role: model.RoleBudtender, PasswordHash: "hash",
	})
	require.NoError(t, err)

	_, err = s.InsertEmployee(&model.Employee{
		FirstName: "Other", LastName: "Person",
		Email: "dana@example.com", Role: model.RoleBudtender, PasswordHash: "hash",
	})
	assert.Error(t, err)
}

func TestOrderDefaultsToPendingStatus(t *testing.T) {
	s := newStore(t)

	result, err := s.InsertOrder(&model.Order{TotalAmount: 30, PaymentMethod: "cash"})
	require.NoError(t, err)

	got, err := s.OrderByID(result.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, got.PaymentStatus)
}

func TestOrderItemsByOrderID(t *testing.T) {
	s := newStore(t)

	p, err := s.InsertProduct(&model.Product{Name: "Pre-roll", Price: 10})
	require.NoError(t, err)
	first, err := s.InsertOrder(&model.Order{TotalAmount: 10, PaymentMethod: "cash"})
	require.NoError(t, err)
	second, err := s.InsertOrder(&model.Order{TotalAmount: 20, PaymentMethod: "credit"})
	require.NoError(t, err)

	_, err = s.InsertOrderItem(&model.OrderItem{
		OrderID: first.InsertedID, ProductID: p.InsertedID,
		Quantity: 1, UnitPrice: 10, TotalPrice: 10,
	})
	require.NoError(t, err)
	_, err = s.InsertOrderItem(&model.OrderItem{
		OrderID: second.InsertedID, ProductID: p.InsertedID,
		Quantity: 2, UnitPrice: 10, TotalPrice: 20,
	})
	require.NoError(t, err)

	items, err := s.OrderItemsByOrderID(first.InsertedID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestDispensaryStatusDefaultsToActive(t *testing.T) {
	s := newStore(t)

	result, err := s.InsertDispensary(&model.Dispensary{Name: "Green Door", City: "Denver"})
	require.NoError(t, err)

	dispensary, err := s.DispensaryByID(result.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, model.DispensaryActive, dispensary.Status)
}
