// README: Walker presence handlers: location updates and availability.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pawmatch/internal/modules/walker"
	"pawmatch/internal/types"
)

type WalkerHandler struct {
	walkers *walker.Service
}

func NewWalkerHandler(svc *walker.Service) *WalkerHandler {
	return &WalkerHandler{walkers: svc}
}

type locationUpdateReq struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

func (h *WalkerHandler) UpdateLocation(c *gin.Context) {
	var req locationUpdateReq
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.walkers.UpdateLocation(c.Request.Context(), types.ID(c.Param("id")), types.Point{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		writeWalkerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

type availabilityReq struct {
	Active *bool `json:"active" validate:"required"`
}

func (h *WalkerHandler) SetAvailability(c *gin.Context) {
	var req availabilityReq
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.walkers.SetActive(c.Request.Context(), types.ID(c.Param("id")), *req.Active)
	if err != nil {
		writeWalkerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"active": *req.Active})
}

func writeWalkerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, walker.ErrNotFound):
		writeError(c, http.StatusNotFound, walker.ErrNotFound.Error())
	case errors.Is(err, walker.ErrBadLocation):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
