package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nagacare/internal/directory"
	"nagacare/internal/domain"
	"nagacare/internal/intent"
)

// DirectoryHandler expone las tablas estaticas: facilities, barangays y dashboard.
type DirectoryHandler struct {
	logger         *zap.Logger
	dir            *directory.Directory
	directionsBase string
}

func NewDirectoryHandler(logger *zap.Logger, dir *directory.Directory, directionsBase string) *DirectoryHandler {
	return &DirectoryHandler{
		logger:         logger,
		dir:            dir,
		directionsBase: directionsBase,
	}
}

// ListFacilities maneja GET /facilities.
func (h *DirectoryHandler) ListFacilities(c *gin.Context) {
	filter := domain.FacilityFilter{
		Type:     domain.FacilityType(strings.ToLower(strings.TrimSpace(c.Query("type")))),
		Barangay: c.Query("barangay"),
		Service:  c.Query("service"),
	}
	if filter.Type != "" && !filter.Type.Valid() {
		h.logger.Warn("invalid facility type", zap.String("type", string(filter.Type)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid facility type"})
		return
	}

	var err error
	if filter.Open24, err = queryBool(c, "open24"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid open24"})
		return
	}
	if filter.PhilHealth, err = queryBool(c, "philhealth"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid philhealth"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"facilities": h.dir.Facilities(filter)})
}

// SearchFacilities maneja GET /facilities/search.
func (h *DirectoryHandler) SearchFacilities(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{"facilities": h.dir.Search(query, limit)})
}

// GetFacility maneja GET /facilities/:id.
func (h *DirectoryHandler) GetFacility(c *gin.Context) {
	facility, ok := h.lookupFacility(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"facility": facility})
}

// Directions maneja GET /facilities/:id/directions. Solo arma el deep link.
func (h *DirectoryHandler) Directions(c *gin.Context) {
	facility, ok := h.lookupFacility(c)
	if !ok {
		return
	}
	link, err := intent.DirectionsURL(h.directionsBase, facility.Latitude, facility.Longitude)
	if err != nil {
		if errors.Is(err, intent.ErrInvalidCoordinates) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "facility has no location"})
			return
		}
		h.logger.Error("build directions url failed", zap.String("facility_id", facility.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build directions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"facility_id": facility.ID, "url": link})
}

// ListBarangays maneja GET /barangays.
func (h *DirectoryHandler) ListBarangays(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"barangays": h.dir.Barangays()})
}

// GetBarangay maneja GET /barangays/:name.
func (h *DirectoryHandler) GetBarangay(c *gin.Context) {
	b, err := h.dir.Barangay(c.Param("name"))
	if err != nil {
		if errors.Is(err, directory.ErrBarangayNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "barangay not found"})
			return
		}
		h.logger.Error("get barangay failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get barangay"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"barangay": b})
}

// Summary maneja GET /dashboard/summary.
func (h *DirectoryHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"summary": h.dir.Summary()})
}

func (h *DirectoryHandler) lookupFacility(c *gin.Context) (domain.Facility, bool) {
	facility, err := h.dir.Facility(c.Param("id"))
	if err != nil {
		if errors.Is(err, directory.ErrFacilityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "facility not found"})
			return domain.Facility{}, false
		}
		h.logger.Error("get facility failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get facility"})
		return domain.Facility{}, false
	}
	return facility, true
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
