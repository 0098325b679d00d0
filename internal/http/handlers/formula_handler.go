// README: Formula generation handlers.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"formulagen/internal/http/middleware"
	"formulagen/internal/modules/formula"
)

type FormulaHandler struct {
	formula *formula.Service
	timeout time.Duration
}

func NewFormulaHandler(svc *formula.Service, timeout time.Duration) *FormulaHandler {
	return &FormulaHandler{formula: svc, timeout: timeout}
}

type generateReq struct {
	Prompt string `json:"prompt"`
}

type generateResp struct {
	Formula          string         `json:"formula"`
	Explanation      string         `json:"explanation"`
	ExplanationLines []formula.Line `json:"explanation_lines"`
}

// Generate handles POST /api/formula.
func (h *FormulaHandler) Generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(c, http.StatusBadRequest, "missing prompt")
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.formula.Generate(ctx, middleware.CallerUID(c), req.Prompt)
	if err != nil {
		writeFormulaError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, generateResp{
		Formula:          res.Formula,
		Explanation:      res.Explanation,
		ExplanationLines: res.Lines(),
	})
}

// Examples handles GET /api/formula/examples.
func (h *FormulaHandler) Examples(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"examples": formula.ExamplePrompts})
}
