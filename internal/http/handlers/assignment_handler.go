// README: Global assignment handler: pending requests across active walkers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pawmatch/internal/modules/assignment"
)

type AssignmentHandler struct {
	assignment *assignment.Service
}

func NewAssignmentHandler(svc *assignment.Service) *AssignmentHandler {
	return &AssignmentHandler{assignment: svc}
}

type sweepReq struct {
	Criteria string `json:"criteria" validate:"omitempty,oneof=balanced distance time combined"`
}

// Sweep computes the minimum-cost one-to-one assignment of every pending
// request to an active walker and returns the proposal without applying it.
func (h *AssignmentHandler) Sweep(c *gin.Context) {
	var req sweepReq
	if c.Request.ContentLength > 0 {
		if !bindAndValidate(c, &req) {
			return
		}
	}
	res, err := h.assignment.Sweep(c.Request.Context(), req.Criteria)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, res)
}
