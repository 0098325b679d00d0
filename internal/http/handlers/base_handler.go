// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"formulagen/internal/modules/formula"
	"formulagen/internal/modules/inflight"
	"formulagen/internal/modules/quota"
)

type errorResponse struct {
	Error string       `json:"error"`
	Kind  formula.Kind `json:"kind,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// kindStatus maps each generation error kind to an HTTP status.
var kindStatus = map[formula.Kind]int{
	formula.KindConfiguration:  http.StatusUnauthorized,
	formula.KindEmptyResponse:  http.StatusBadGateway,
	formula.KindMalformedJSON:  http.StatusBadGateway,
	formula.KindSchemaMismatch: http.StatusBadGateway,
	formula.KindTransport:      http.StatusServiceUnavailable,
}

func writeFormulaError(c *gin.Context, err error) {
	if kind, ok := formula.KindOf(err); ok {
		status, known := kindStatus[kind]
		if !known {
			status = http.StatusBadGateway
		}
		writeJSON(c, status, errorResponse{Error: err.Error(), Kind: kind})
		return
	}
	switch {
	case errors.Is(err, formula.ErrEmptyPrompt):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, inflight.ErrBusy):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, quota.ErrExhausted):
		writeError(c, http.StatusTooManyRequests, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
