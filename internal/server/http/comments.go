package http

import (
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/gin-gonic/gin"
)

// Comment routes share the :id segment with the post routes; here it names
// the post.

func (s *HTTPServer) listComments(c *gin.Context) {
	q := models.NewListQuery(c.Query("page"), c.Query("limit"), s.maxPageSize)
	page, err := s.services.Comments.List(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentsPageResponse(page))
}

func (s *HTTPServer) createComment(c *gin.Context, principal *models.User) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(c, err)
		return
	}

	comment, err := s.services.Comments.Create(c.Request.Context(), principal, c.Param("id"), req.Content)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}
