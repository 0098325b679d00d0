package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"formulagen/internal/modules/credential"
	"formulagen/internal/modules/formula"
)

func TestRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer(ServerDeps{
		Formula:         formula.NewService(formula.ServiceDeps{}),
		Credential:      credential.NewService(nil),
		GenerateTimeout: time.Second,
	})
	h := srv.Routes()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/formula/examples", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// Generation requires a client id before any service call.
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/formula", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
