package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispensary-pos/internal/model"
	"dispensary-pos/internal/store"
	"dispensary-pos/pkg/logger"
)

// DispensaryRequest defines the structure for directory entries
type DispensaryRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Hours   string `json:"hours"`
	License string `json:"license"`
	Status  string `json:"status"`
}

type DispensaryHandler struct {
	store store.DispensaryStore
}

func NewDispensaryHandler(s store.DispensaryStore) *DispensaryHandler {
	return &DispensaryHandler{store: s}
}

// List handles retrieving the directory, with optional name/city search
// and per-status counts.
func (h *DispensaryHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	dispensaries, err := h.store.Dispensaries()
	if err != nil {
		log.Error("Failed to list dispensaries", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve dispensaries"})
	}

	if search := strings.ToLower(c.QueryParam("search")); search != "" {
		filtered := dispensaries[:0:0]
		for _, d := range dispensaries {
			if strings.Contains(strings.ToLower(d.Name), search) ||
				strings.Contains(strings.ToLower(d.City), search) {
				filtered = append(filtered, d)
			}
		}
		dispensaries = filtered
	}

	counts := map[string]int{}
	for _, d := range dispensaries {
		counts[d.Status]++
	}

	return c.JSON(http.StatusOK, echo.Map{
		"dispensaries": dispensaries,
		"total":        len(dispensaries),
		"active":       counts[model.DispensaryActive],
		"pending":      counts[model.DispensaryPending],
		"closed":       counts[model.DispensaryClosed],
	})
}

func (h *DispensaryHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid dispensary id"})
	}

	dispensary, err := h.store.DispensaryByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Dispensary not found"})
		}
		log.Error("Failed to get dispensary", zap.Uint("dispensary_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve dispensary"})
	}
	return c.JSON(http.StatusOK, dispensary)
}

func (h *DispensaryHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req DispensaryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Dispensary name is required"})
	}
	if req.Status != "" && !validDispensaryStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unknown dispensary status"})
	}

	dispensary := model.Dispensary{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
		Hours:   req.Hours,
		License: req.License,
		Status:  req.Status,
	}

	result, err := h.store.InsertDispensary(&dispensary)
	if err != nil {
		log.Error("Failed to create dispensary", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create dispensary"})
	}

	log.Info("Dispensary created successfully",
		zap.Uint("dispensary_id", result.InsertedID),
		zap.String("name", dispensary.Name))
	return c.JSON(http.StatusCreated, dispensary)
}

func (h *DispensaryHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid dispensary id"})
	}

	var patch model.DispensaryPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Uint("dispensary_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if patch.Status != nil && !validDispensaryStatus(*patch.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unknown dispensary status"})
	}

	result, err := h.store.UpdateDispensary(id, patch)
	if err != nil {
		log.Error("Failed to update dispensary", zap.Uint("dispensary_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update dispensary"})
	}
	if !result.Changed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Dispensary not found"})
	}

	dispensary, err := h.store.DispensaryByID(id)
	if err != nil {
		log.Error("Failed to reload dispensary", zap.Uint("dispensary_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve dispensary"})
	}
	return c.JSON(http.StatusOK, dispensary)
}

func (h *DispensaryHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid dispensary id"})
	}

	result, err := h.store.DeleteDispensary(id)
	if err != nil {
		log.Error("Failed to delete dispensary", zap.Uint("dispensary_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete dispensary"})
	}
	if !result.Changed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Dispensary not found"})
	}

	log.Info("Dispensary deleted successfully", zap.Uint("dispensary_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Dispensary deleted successfully"})
}

func validDispensaryStatus(status string) bool {
	switch status {
	case model.DispensaryActive, model.DispensaryPending, model.DispensaryClosed:
		return true
	}
	return false
}
