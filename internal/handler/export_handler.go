package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispensary-pos/internal/export"
	"dispensary-pos/internal/store"
	"dispensary-pos/pkg/logger"
)

type ExportHandler struct {
	store store.Store
}

func NewExportHandler(s store.Store) *ExportHandler {
	return &ExportHandler{store: s}
}

// Table streams one collection as a dated download, either delimited
// text or an indented JSON dump.
func (h *ExportHandler) Table(c echo.Context) error {
	log := logger.FromContext(c)
	table := c.Param("table")
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unknown export format"})
	}

	var (
		data []byte
		err  error
	)
	switch table {
	case store.TableProducts:
		data, err = render(h.store.Products())(format)
	case store.TableCustomers:
		data, err = render(h.store.Customers())(format)
	case store.TableEmployees:
		data, err = render(h.store.Employees())(format)
	case store.TableOrders:
		data, err = render(h.store.Orders())(format)
	case store.TableOrderItems:
		data, err = render(h.store.OrderItems())(format)
	case store.TableInventory:
		data, err = render(h.store.InventoryTransactions())(format)
	case store.TableListings:
		data, err = render(h.store.Listings())(format)
	case store.TableDispensaries:
		data, err = render(h.store.Dispensaries())(format)
	default:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Unknown table"})
	}
	if err != nil {
		log.Error("Failed to export table", zap.String("table", table), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Export failed"})
	}

	filename := export.Filename(table, format, time.Now())
	log.Info("Table exported", zap.String("table", table), zap.String("filename", filename))
	return attachment(c, filename, format, data)
}

// All dumps every collection into one JSON document stamped with the
// export time.
func (h *ExportHandler) All(c echo.Context) error {
	log := logger.FromContext(c)

	products, err := h.store.Products()
	if err != nil {
		return exportFailed(c, log, err)
	}
	customers, err := h.store.Customers()
	if err != nil {
		return exportFailed(c, log, err)
	}
	employees, err := h.store.Employees()
	if err != nil {
		return exportFailed(c, log, err)
	}
	orders, err := h.store.Orders()
	if err != nil {
		return exportFailed(c, log, err)
	}
	orderItems, err := h.store.OrderItems()
	if err != nil {
		return exportFailed(c, log, err)
	}
	transactions, err := h.store.InventoryTransactions()
	if err != nil {
		return exportFailed(c, log, err)
	}
	listings, err := h.store.Listings()
	if err != nil {
		return exportFailed(c, log, err)
	}
	dispensaries, err := h.store.Dispensaries()
	if err != nil {
		return exportFailed(c, log, err)
	}

	now := time.Now().UTC()
	dump := map[string]interface{}{
		store.TableProducts:     products,
		store.TableCustomers:    customers,
		store.TableEmployees:    employees,
		store.TableOrders:       orders,
		store.TableOrderItems:   orderItems,
		store.TableInventory:    transactions,
		store.TableListings:     listings,
		store.TableDispensaries: dispensaries,
		"exported_at":           now.Format(time.RFC3339),
	}

	data, err := export.JSON(dump)
	if err != nil {
		return exportFailed(c, log, err)
	}

	filename := export.Filename("complete_database", "json", now)
	log.Info("Full database exported", zap.String("filename", filename))
	return attachment(c, filename, "json", data)
}

// render defers the format choice so the table switch stays flat.
func render[T any](records []T, err error) func(format string) ([]byte, error) {
	return func(format string) ([]byte, error) {
		if err != nil {
			return nil, err
		}
		if format == "json" {
			return export.JSON(records)
		}
		return export.CSV(records)
	}
}

func attachment(c echo.Context, filename, format string, data []byte) error {
	contentType := "text/csv; charset=utf-8"
	if format == "json" {
		contentType = "application/json; charset=utf-8"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, contentType, data)
}

func exportFailed(c echo.Context, log *zap.Logger, err error) error {
	log.Error("Failed to export data", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Export failed"})
}
