package http

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
	"github.com/gin-gonic/gin"
)

// postQuery reads page, limit, search and status from the query string.
// Only an unknown status is an error; bad paging values fall back to
// defaults.
func (s *HTTPServer) postQuery(c *gin.Context) (models.PostQuery, bool) {
	q := models.PostQuery{
		ListQuery: models.NewListQuery(c.Query("page"), c.Query("limit"), s.maxPageSize),
		Search:    strings.TrimSpace(c.Query("search")),
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			return q, false
		}
		q.Status = &status
	}
	return q, true
}

func (s *HTTPServer) listPosts(c *gin.Context) {
	q, ok := s.postQuery(c)
	if !ok {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidStatus)
		return
	}
	page, err := s.services.Posts.List(c.Request.Context(), q)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostsPageResponse(page))
}

func (s *HTTPServer) listMyPosts(c *gin.Context, principal *models.User) {
	q, ok := s.postQuery(c)
	if !ok {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidStatus)
		return
	}
	page, err := s.services.Posts.ListMine(c.Request.Context(), principal, q)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostsPageResponse(page))
}

func (s *HTTPServer) getPost(c *gin.Context) {
	post, err := s.services.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

func (s *HTTPServer) createPost(c *gin.Context, principal *models.User) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req.normalize()
	if req.Status != "" && !models.PostStatus(req.Status).Valid() {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidStatus)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(c, err)
		return
	}

	post, err := s.services.Posts.Create(c.Request.Context(), principal, services.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Status:  models.PostStatus(req.Status),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newPostResponse(post))
}

func (s *HTTPServer) updatePost(c *gin.Context, _ *models.User) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(c, err)
		return
	}

	in := services.UpdatePostInput{Tags: req.Tags}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Content != nil {
		in.Content = *req.Content
	}
	post, err := s.services.Posts.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

func (s *HTTPServer) deletePost(c *gin.Context, _ *models.User) {
	if err := s.services.Posts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Post deleted successfully"})
}

// setPostStatus runs behind the ownership gate, so the post existed when
// the gate checked it.
func (s *HTTPServer) setPostStatus(c *gin.Context, _ *models.User) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	status, err := models.ParseStatus(strings.TrimSpace(req.Status))
	if err != nil {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidStatus)
		return
	}

	post, err := s.services.Posts.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

func (s *HTTPServer) publishPost(c *gin.Context, _ *models.User) {
	post, err := s.services.Posts.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

func (s *HTTPServer) unpublishPost(c *gin.Context, _ *models.User) {
	post, err := s.services.Posts.Unpublish(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}
