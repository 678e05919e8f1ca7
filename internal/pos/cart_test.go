package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispensary-pos/internal/model"
)

func preRoll() model.Product {
	return model.Product{ID: 1, Name: "Pre-roll", Price: 8.5, StockQuantity: 3}
}

func TestAddProductCapsAtStock(t *testing.T) {
	r := &Register{}
	p := preRoll()

	for i := 0; i < 3; i++ {
		require.NoError(t, r.AddProduct(p))
	}
	err := r.AddProduct(p)
	assert.ErrorIs(t, err, ErrStockLimit)

	items := r.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddOutOfStockProduct(t *testing.T) {
	r := &Register{}
	p := preRoll()
	p.StockQuantity = 0

	assert.ErrorIs(t, r.AddProduct(p), ErrStockLimit)
	assert.Empty(t, r.Items())
}

func TestAddKeepsLineOrder(t *testing.T) {
	r := &Register{}
	first := preRoll()
	second := model.Product{ID: 2, Name: "Gummies", Price: 20, StockQuantity: 10}

	require.NoError(t, r.AddProduct(first))
	require.NoError(t, r.AddProduct(second))
	require.NoError(t, r.AddProduct(first))

	items := r.Items()
	require.Len(t, items, 2)
	assert.Equal(t, uint(1), items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, uint(2), items[1].Product.ID)
}

func TestSetQuantity(t *testing.T) {
	r := &Register{}
	require.NoError(t, r.AddProduct(preRoll()))

	require.NoError(t, r.SetQuantity(1, 3))
	assert.Equal(t, 3, r.Items()[0].Quantity)

	assert.ErrorIs(t, r.SetQuantity(1, 4), ErrStockLimit)
	assert.Equal(t, 3, r.Items()[0].Quantity)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	r := &Register{}
	require.NoError(t, r.AddProduct(preRoll()))

	require.NoError(t, r.SetQuantity(1, 0))
	assert.Empty(t, r.Items())
}

func TestSetQuantityUnknownProductIsNoOp(t *testing.T) {
	r := &Register{}
	require.NoError(t, r.SetQuantity(99, 5))
	assert.Empty(t, r.Items())
}

func TestRemove(t *testing.T) {
	r := &Register{}
	require.NoError(t, r.AddProduct(preRoll()))

	r.Remove(1)
	assert.Empty(t, r.Items())
}

func TestTotal(t *testing.T) {
	r := &Register{}
	p := preRoll()
	require.NoError(t, r.AddProduct(p))
	require.NoError(t, r.AddProduct(p))

	assert.InDelta(t, 17.0, r.Total(), 1e-9)
}

func TestCheckoutDrainsCart(t *testing.T) {
	r := &Register{}
	p := preRoll()
	require.NoError(t, r.AddProduct(p))
	require.NoError(t, r.AddProduct(p))

	receipt, err := r.Checkout(PaymentCash)
	require.NoError(t, err)
	assert.InDelta(t, 17.0, receipt.Total, 1e-9)
	assert.Equal(t, PaymentCash, receipt.PaymentMethod)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, 2, receipt.Items[0].Quantity)
	assert.False(t, receipt.CheckedOutAt.IsZero())

	assert.Empty(t, r.Items())
	_, err = r.Checkout(PaymentCash)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutRejectsUnknownPayment(t *testing.T) {
	r := &Register{}
	require.NoError(t, r.AddProduct(preRoll()))

	_, err := r.Checkout("barter")
	assert.ErrorIs(t, err, ErrUnknownPayment)
	assert.Len(t, r.Items(), 1)
}

func TestManagerReturnsSameRegisterPerName(t *testing.T) {
	m := NewManager()

	front := m.Register("front")
	require.NoError(t, front.AddProduct(preRoll()))

	assert.Len(t, m.Register("front").Items(), 1)
	assert.Empty(t, m.Register("back").Items())
}
