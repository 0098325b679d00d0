// README: Provider credential handlers; the key is write-only over HTTP.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"formulagen/internal/modules/credential"
)

type CredentialHandler struct {
	creds *credential.Service
}

func NewCredentialHandler(svc *credential.Service) *CredentialHandler {
	return &CredentialHandler{creds: svc}
}

type saveCredentialReq struct {
	APIKey string `json:"api_key"`
}

// Status handles GET /api/credential.
func (h *CredentialHandler) Status(c *gin.Context) {
	ok, err := h.creds.Configured(c.Request.Context())
	if err != nil {
		log.Printf("credential: status: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"configured": ok})
}

// Save handles PUT /api/credential.
func (h *CredentialHandler) Save(c *gin.Context) {
	var req saveCredentialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.creds.Save(c.Request.Context(), req.APIKey); err != nil {
		if errors.Is(err, credential.ErrInvalid) {
			writeError(c, http.StatusBadRequest, "missing api_key")
			return
		}
		log.Printf("credential: save: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
