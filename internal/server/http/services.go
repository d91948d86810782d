package http

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
)

// UserService is the slice of services.UserService the handlers need.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

type PostService interface {
	List(ctx context.Context, q models.PostQuery) (*models.PostPage, error)
	ListMine(ctx context.Context, principal *models.User, q models.PostQuery) (*models.PostPage, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, principal *models.User, in services.CreatePostInput) (*models.Post, error)
	Update(ctx context.Context, id string, in services.UpdatePostInput) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status models.PostStatus) (*models.Post, error)
	Publish(ctx context.Context, id string) (*models.Post, error)
	Unpublish(ctx context.Context, id string) (*models.Post, error)
	AuthorizeOwner(ctx context.Context, id string, principal *models.User) error
}

type CommentService interface {
	List(ctx context.Context, postID string, q models.ListQuery) (*models.CommentPage, error)
	Create(ctx context.Context, principal *models.User, postID, content string) (*models.Comment, error)
}

// Pinger reports database reachability for /ready. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services bundles the business services behind the routes.
type Services struct {
	Users    UserService
	Posts    PostService
	Comments CommentService
}
