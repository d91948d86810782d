package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewCommentService(db *sql.DB, m repomanager.RepositoryManager) *CommentService {
	return &CommentService{
		db:          db,
		repomanager: m,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List returns a page of the post's comments, newest first. An absent post
// yields common.ErrorNotFound.
func (s *CommentService) List(ctx context.Context, postID string, q models.ListQuery) (*models.CommentPage, error) {
	if !validID(postID) {
		return nil, common.ErrorNotFound
	}

	ok, err := s.repomanager.Posts(s.db).Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error checking post: %w", err)
	}
	if !ok {
		return nil, common.ErrorNotFound
	}

	window := q
	if q.PastEnd() {
		window = models.ListQuery{Page: 1, Limit: 1}
	}
	comments, total, err := s.repomanager.Comments(s.db).ListByPost(ctx, postID, window)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	if q.PastEnd() {
		comments = []*models.Comment{}
	}
	return &models.CommentPage{Comments: comments, PageInfo: models.NewPageInfo(q, total)}, nil
}

// Create adds a comment by principal to the post. The existence check and
// the insert are one statement, so a concurrently deleted post yields
// common.ErrorNotFound instead of an orphan.
func (s *CommentService) Create(ctx context.Context, principal *models.User, postID, content string) (*models.Comment, error) {
	if principal == nil {
		return nil, common.ErrorUnauthorized
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.ErrorValidation
	}
	if !validID(postID) {
		return nil, common.ErrorNotFound
	}

	comment := &models.Comment{
		Content:   content,
		Author:    models.Author{ID: principal.ID, Name: principal.Name, Email: principal.Email},
		PostID:    postID,
		CreatedAt: s.now(),
	}
	created, err := s.repomanager.Comments(s.db).CreateIfPostExists(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}
	return created, nil
}
