package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispensary-pos/internal/model"
	"dispensary-pos/internal/store"
	"dispensary-pos/pkg/logger"
)

// ListingRequest defines the structure for marketplace listing creation
type ListingRequest struct {
	WeedmapsID    string  `json:"weedmaps_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Published     bool    `json:"published"`
	ExternalID    string  `json:"external_id"`
	Picture       string  `json:"picture"`
	Featured      bool    `json:"featured"`
	Category      string  `json:"category"`
	Tags          string  `json:"tags"`
	Strain        string  `json:"strain"`
	Genetics      string  `json:"genetics"`
	GalleryImages string  `json:"gallery_images"`
	CBDPercentage float64 `json:"cbd_percentage"`
	THCPercentage float64 `json:"thc_percentage"`
}

type ListingHandler struct {
	store store.ListingStore
}

func NewListingHandler(s store.ListingStore) *ListingHandler {
	return &ListingHandler{store: s}
}

// List handles retrieving marketplace listings, optionally only the
// published or featured ones.
func (h *ListingHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	listings, err := h.store.Listings()
	if err != nil {
		log.Error("Failed to list marketplace listings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve listings"})
	}

	if published := c.QueryParam("published"); published != "" {
		if only, err := strconv.ParseBool(published); err == nil {
			filtered := listings[:0:0]
			for _, l := range listings {
				if l.Published == only {
					filtered = append(filtered, l)
				}
			}
			listings = filtered
		}
	}
	if featured := c.QueryParam("featured"); featured != "" {
		if only, err := strconv.ParseBool(featured); err == nil {
			filtered := listings[:0:0]
			for _, l := range listings {
				if l.Featured == only {
					filtered = append(filtered, l)
				}
			}
			listings = filtered
		}
	}

	return c.JSON(http.StatusOK, listings)
}

func (h *ListingHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid listing id"})
	}

	listing, err := h.store.ListingByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Listing not found"})
		}
		log.Error("Failed to get listing", zap.Uint("listing_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve listing"})
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req ListingRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Listing name is required"})
	}

	listing := model.CatalogListing{
		WeedmapsID:    req.WeedmapsID,
		Name:          req.Name,
		Description:   req.Description,
		Published:     req.Published,
		ExternalID:    req.ExternalID,
		Picture:       req.Picture,
		Featured:      req.Featured,
		Category:      req.Category,
		Tags:          req.Tags,
		Strain:        req.Strain,
		Genetics:      req.Genetics,
		GalleryImages: req.GalleryImages,
		CBDPercentage: req.CBDPercentage,
		THCPercentage: req.THCPercentage,
	}

	result, err := h.store.InsertListing(&listing)
	if err != nil {
		log.Error("Failed to create listing", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create listing"})
	}

	log.Info("Listing created successfully",
		zap.Uint("listing_id", result.InsertedID),
		zap.String("name", listing.Name),
		zap.Bool("published", listing.Published))
	return c.JSON(http.StatusCreated, listing)
}

func (h *ListingHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid listing id"})
	}

	var patch model.CatalogListingPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Uint("listing_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	result, err := h.store.UpdateListing(id, patch)
	if err != nil {
		log.Error("Failed to update listing", zap.Uint("listing_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update listing"})
	}
	if !result.Changed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Listing not found"})
	}

	listing, err := h.store.ListingByID(id)
	if err != nil {
		log.Error("Failed to reload listing", zap.Uint("listing_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve listing"})
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid listing id"})
	}

	result, err := h.store.DeleteListing(id)
	if err != nil {
		log.Error("Failed to delete listing", zap.Uint("listing_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete listing"})
	}
	if !result.Changed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Listing not found"})
	}

	log.Info("Listing deleted successfully", zap.Uint("listing_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Listing deleted successfully"})
}
