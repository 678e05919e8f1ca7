package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispensary-pos/internal/model"
)

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "products_2024-03-07.csv", Filename("products", "csv", now))
	assert.Equal(t, "customers_2024-03-07.json", Filename("customers", "json", now))
}

func TestCSVHeaderAndRows(t *testing.T) {
	created := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
	records := []model.Customer{
		{
			ID: 1, FirstName: "Dana", LastName: "Reyes",
			Email: "dana@example.com", Phone: "555-0101",
			CreatedAt: created, UpdatedAt: created,
		},
	}

	out, err := CSV(records)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0])
	assert.Contains(t, rows[0], "first_name")
	assert.Contains(t, rows[0], "email")
	assert.Equal(t, "1", rows[1][0])
	assert.Contains(t, rows[1], "Dana")
	assert.Contains(t, rows[1], "2024-03-07T12:00:00Z")
}

func TestCSVQuotesDelimitersAndQuotes(t *testing.T) {
	records := []model.Product{
		{ID: 1, Name: `Blue "Dreamy" Dream, 3.5g`, Price: 12.5},
	}

	out, err := CSV(records)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Blue ""Dreamy"" Dream, 3.5g"`)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Contains(t, rows[1], `Blue "Dreamy" Dream, 3.5g`)
}

func TestCSVSkipsHiddenAndAssociationFields(t *testing.T) {
	out, err := CSV([]model.Employee{{ID: 1, Email: "a@b.c", PasswordHash: "secret"}})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.NotContains(t, rows[0], "password_hash")
	assert.NotContains(t, string(out), "secret")

	itemOut, err := CSV([]model.OrderItem{{ID: 1, OrderID: 2, ProductID: 3, Quantity: 1}})
	require.NoError(t, err)
	itemRows, err := csv.NewReader(bytes.NewReader(itemOut)).ReadAll()
	require.NoError(t, err)
	assert.NotContains(t, itemRows[0], "order")
	assert.NotContains(t, itemRows[0], "product")
}

func TestCSVNilOptionalFieldsFlattenEmpty(t *testing.T) {
	out, err := CSV([]model.Order{{ID: 1, TotalAmount: 10, PaymentMethod: "cash"}})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)

	var customerCol int
	for i, name := range rows[0] {
		if name == "customer_id" {
			customerCol = i
		}
	}
	assert.Equal(t, "", rows[1][customerCol])
}

func TestJSONRoundTrip(t *testing.T) {
	records := []model.Product{
		{ID: 1, Name: "Blue Dream", Price: 12.5, StockQuantity: 20},
		{ID: 2, Name: "Gelato", Price: 15, StockQuantity: 8},
	}

	out, err := JSON(records)
	require.NoError(t, err)

	var decoded []model.Product
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, records[0].Name, decoded[0].Name)
	assert.Equal(t, records[1].Price, decoded[1].Price)
}
