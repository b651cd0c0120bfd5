// README: Recommendation handlers for owners and walkers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pawmatch/internal/modules/recommend"
	"pawmatch/internal/types"
)

type RecommendHandler struct {
	recommend *recommend.Service
}

func NewRecommendHandler(svc *recommend.Service) *RecommendHandler {
	return &RecommendHandler{recommend: svc}
}

func (h *RecommendHandler) WalkersForOwner(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing owner id")
		return
	}
	recs, err := h.recommend.WalkersForOwner(c.Request.Context(), types.ID(id))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"owner_id": id, "recommendations": recs})
}

func (h *RecommendHandler) OwnersForWalker(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing walker id")
		return
	}
	recs, err := h.recommend.OwnersForWalker(c.Request.Context(), types.ID(id))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"walker_id": id, "recommendations": recs})
}
