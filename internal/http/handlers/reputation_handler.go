// README: Reputation report handler.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pawmatch/internal/modules/reputation"
	"pawmatch/internal/modules/walker"
	"pawmatch/internal/types"
)

type ReputationHandler struct {
	reputation *reputation.Service
}

func NewReputationHandler(svc *reputation.Service) *ReputationHandler {
	return &ReputationHandler{reputation: svc}
}

// Report returns a walker's full rating analysis: stabilized rating,
// confidence, trend, volatility, moving average, and largest swings.
func (h *ReputationHandler) Report(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing walker id")
		return
	}
	report, err := h.reputation.WalkerReport(c.Request.Context(), types.ID(id))
	if err != nil {
		if errors.Is(err, walker.ErrNotFound) {
			writeError(c, http.StatusNotFound, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, report)
}
