package comments

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type Repository interface {
	CreateIfPostExists(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string, q models.ListQuery) ([]*models.Comment, int, error)
}
