// README: Base handler utilities (JSON helpers, error mapping, validation).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"pawmatch/internal/modules/request"
)

type errorResponse struct {
	Error string `json:"error"`
}

// validate checks payload structs after binding; binding only guarantees
// JSON shape, not field constraints.
var validate = validator.New()

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeRequestError(c *gin.Context, err error) {
	switch err {
	case request.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case request.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case request.ErrInvalidState, request.ErrConflict, request.ErrScheduleConflict:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func bindAndValidate(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
