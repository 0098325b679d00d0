// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"formulagen/internal/http/handlers"
	"formulagen/internal/http/middleware"
	"formulagen/internal/modules/credential"
	"formulagen/internal/modules/formula"
)

type ServerDeps struct {
	Formula    *formula.Service
	Credential *credential.Service
	// GenerateTimeout bounds one provider round trip.
	GenerateTimeout time.Duration
}

type Server struct {
	formula    *formula.Service
	credential *credential.Service
	timeout    time.Duration
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		formula:    deps.Formula,
		credential: deps.Credential,
		timeout:    deps.GenerateTimeout,
	}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	formulaHandler := handlers.NewFormulaHandler(s.formula, s.timeout)
	r.POST("/api/formula", middleware.ClientID(), formulaHandler.Generate)
	r.GET("/api/formula/examples", formulaHandler.Examples)

	credentialHandler := handlers.NewCredentialHandler(s.credential)
	r.GET("/api/credential", credentialHandler.Status)
	r.PUT("/api/credential", credentialHandler.Save)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return r
}
