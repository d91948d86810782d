package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(c, err)
		return
	}

	user, pair, err := s.services.Users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newAuthResponse(user, pair))
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(c, err)
		return
	}

	user, pair, err := s.services.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			abortWithMessage(c, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAuthResponse(user, pair))
}

// refresh treats an unreadable body like a missing token.
func (s *HTTPServer) refresh(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)
	token := strings.TrimSpace(req.RefreshToken)
	if token == "" {
		abortWithMessage(c, http.StatusUnauthorized, msgRefreshRequired)
		return
	}

	pair, err := s.services.Users.RefreshToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			abortWithMessage(c, http.StatusUnauthorized, msgInvalidRefreshToken)
			return
		}
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Token: pair.AccessToken, RefreshToken: pair.RefreshToken})
}
