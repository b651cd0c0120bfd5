// README: Walk request lifecycle handlers: create, get, accept, complete, cancel.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pawmatch/internal/modules/request"
	"pawmatch/internal/types"
)

type RequestHandler struct {
	requests *request.Service
}

func NewRequestHandler(svc *request.Service) *RequestHandler {
	return &RequestHandler{requests: svc}
}

type createRequestReq struct {
	OwnerID     string    `json:"owner_id" validate:"required"`
	DogID       string    `json:"dog_id" validate:"required"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required,gtfield=Start"`
	BudgetCents int64     `json:"budget_cents" validate:"gte=0"`
	Currency    string    `json:"currency" validate:"omitempty,len=3"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req createRequestReq
	if !bindAndValidate(c, &req) {
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	id, err := h.requests.Create(c.Request.Context(), request.CreateCommand{
		OwnerID: types.ID(req.OwnerID),
		DogID:   types.ID(req.DogID),
		Start:   req.Start,
		End:     req.End,
		Budget:  types.Money{Amount: req.BudgetCents, Currency: currency},
	})
	if err != nil {
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"request_id": id, "status": request.StatusPending})
}

func (h *RequestHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing request id")
		return
	}
	r, err := h.requests.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}

type acceptReq struct {
	WalkerID string `json:"walker_id" validate:"required"`
}

func (h *RequestHandler) Accept(c *gin.Context) {
	var req acceptReq
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.requests.Accept(c.Request.Context(), request.AcceptCommand{
		RequestID: types.ID(c.Param("id")),
		WalkerID:  types.ID(req.WalkerID),
	})
	if err != nil {
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": request.StatusAccepted})
}

func (h *RequestHandler) Complete(c *gin.Context) {
	err := h.requests.Complete(c.Request.Context(), request.CompleteCommand{
		RequestID: types.ID(c.Param("id")),
	})
	if err != nil {
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": request.StatusCompleted})
}

type cancelReq struct {
	Reason string `json:"reason"`
}

func (h *RequestHandler) Cancel(c *gin.Context) {
	var req cancelReq
	_ = c.ShouldBindJSON(&req) // reason is optional, absent body is fine
	err := h.requests.Cancel(c.Request.Context(), request.CancelCommand{
		RequestID: types.ID(c.Param("id")),
		ActorType: "owner",
		Reason:    req.Reason,
	})
	if err != nil {
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": request.StatusCancelled})
}
