// README: Schedule handlers: per-walker optimal day plan and conflict checks.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pawmatch/internal/modules/request"
	"pawmatch/internal/types"
)

type ScheduleHandler struct {
	requests *request.Service
}

func NewScheduleHandler(svc *request.Service) *ScheduleHandler {
	return &ScheduleHandler{requests: svc}
}

// OptimalSchedule returns the maximum-value conflict-free subset of the
// walker's pending candidate requests.
func (h *ScheduleHandler) OptimalSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing walker id")
		return
	}
	plan, err := h.requests.OptimalSchedule(c.Request.Context(), types.ID(id))
	if err != nil {
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, plan)
}

type conflictCheckReq struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required,gtfield=Start"`
}

// CheckConflicts reports overlaps between a candidate booking window and the
// walker's existing bookings, with alternative start suggestions.
func (h *ScheduleHandler) CheckConflicts(c *gin.Context) {
	var req conflictCheckReq
	if !bindAndValidate(c, &req) {
		return
	}
	report, err := h.requests.CheckConflicts(c.Request.Context(), types.ID(c.Param("id")), req.Start, req.End)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, report)
}
