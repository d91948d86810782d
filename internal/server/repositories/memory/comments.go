package memory

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/google/uuid"
)

type CommentsRepository struct {
	s *Store
}

func NewCommentsRepository(s *Store) *CommentsRepository {
	return &CommentsRepository{s: s}
}

// CreateIfPostExists checks for the post and inserts under one lock.
func (r *CommentsRepository) CreateIfPostExists(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[comment.PostID]; !ok {
		return nil, common.ErrorNotFound
	}
	comment.ID = uuid.NewString()
	r.s.comments[comment.ID] = cloneComment(comment)
	return comment, nil
}

func (r *CommentsRepository) ListByPost(ctx context.Context, postID string, q models.ListQuery) ([]*models.Comment, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			cc := cloneComment(c)
			cc.Author = r.s.author(c.Author.ID)
			matched = append(matched, cc)
		}
	}
	sortComments(matched)
	return page(matched, q), len(matched), nil
}
