// README: Match ranking handler for a single pending request.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pawmatch/internal/modules/matching"
	"pawmatch/internal/types"
)

type MatchHandler struct {
	matching *matching.Service
}

func NewMatchHandler(svc *matching.Service) *MatchHandler {
	return &MatchHandler{matching: svc}
}

// Matches ranks compatible walkers for one pending request, with per-factor
// score breakdowns.
func (h *MatchHandler) Matches(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing request id")
		return
	}
	matches, err := h.matching.Matches(c.Request.Context(), types.ID(id))
	if err != nil {
		if errors.Is(err, matching.ErrNotMatchable) {
			writeError(c, http.StatusConflict, err.Error())
			return
		}
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"request_id": id, "matches": matches})
}
