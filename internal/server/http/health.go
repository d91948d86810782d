package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// health reports overall status including the database.
func (s *HTTPServer) health(c *gin.Context) {
	services := map[string]string{"database": "healthy"}
	if err := s.db.PingContext(c.Request.Context()); err != nil {
		services["database"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Services: services})
		return
	}
	c.JSON(http.StatusOK, healthResponse{Status: "healthy", Services: services})
}

func (s *HTTPServer) ready(c *gin.Context) {
	if err := s.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "not ready"})
		return
	}
	c.JSON(http.StatusOK, healthResponse{Status: "ready"})
}

func (s *HTTPServer) live(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "alive"})
}
