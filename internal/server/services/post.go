package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/auth"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

// CreatePostInput is the payload of a new post. An empty Status means draft.
type CreatePostInput struct {
	Title   string
	Content string
	Tags    []string
	Status  models.PostStatus
}

// UpdatePostInput is a partial update: empty strings and a nil Tags keep the
// stored value, a non-nil Tags (even empty) replaces it.
type UpdatePostInput struct {
	Title   string
	Content string
	Tags    []string
}

// PostService implements post listing, lookup and the admin/owner mutations.
// Read-modify-write operations run in a transaction holding the row lock.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{
		db:          db,
		repomanager: m,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List returns the page of posts selected by q.
func (s *PostService) List(ctx context.Context, q models.PostQuery) (*models.PostPage, error) {
	if q.PastEnd() {
		// Only the total is needed; the requested window is empty.
		count := q
		count.ListQuery = models.ListQuery{Page: 1, Limit: 1}
		_, total, err := s.repomanager.Posts(s.db).List(ctx, count)
		if err != nil {
			return nil, fmt.Errorf("error listing posts: %w", err)
		}
		return &models.PostPage{Posts: []*models.Post{}, PageInfo: models.NewPageInfo(q.ListQuery, total)}, nil
	}

	posts, total, err := s.repomanager.Posts(s.db).List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return &models.PostPage{Posts: posts, PageInfo: models.NewPageInfo(q.ListQuery, total)}, nil
}

// ListMine is List restricted to posts authored by principal.
func (s *PostService) ListMine(ctx context.Context, principal *models.User, q models.PostQuery) (*models.PostPage, error) {
	if principal == nil {
		return nil, common.ErrorUnauthorized
	}
	q.AuthorID = principal.ID
	return s.List(ctx, q)
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	post, err := s.repomanager.Posts(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting post: %w", err)
	}
	return post, nil
}

// Create stores a new post authored by principal.
func (s *PostService) Create(ctx context.Context, principal *models.User, in CreatePostInput) (*models.Post, error) {
	if principal == nil {
		return nil, common.ErrorUnauthorized
	}
	status := in.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !status.Valid() {
		return nil, common.ErrorValidation
	}

	now := s.now()
	post := &models.Post{
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Author:    models.Author{ID: principal.ID, Name: principal.Name, Email: principal.Email},
		Tags:      normalizeTags(in.Tags),
		CreatedAt: now,
	}
	post.SetStatus(status, now)

	created, err := s.repomanager.Posts(s.db).Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return created, nil
}

// Update applies a partial update to the post.
func (s *PostService) Update(ctx context.Context, id string, in UpdatePostInput) (*models.Post, error) {
	return s.mutate(ctx, id, func(p *models.Post, now time.Time) {
		if t := strings.TrimSpace(in.Title); t != "" {
			p.Title = t
		}
		if in.Content != "" {
			p.Content = in.Content
		}
		if in.Tags != nil {
			p.Tags = normalizeTags(in.Tags)
		}
		p.Touch(now)
	})
}

// SetStatus moves the post to status; see models.Post.SetStatus.
func (s *PostService) SetStatus(ctx context.Context, id string, status models.PostStatus) (*models.Post, error) {
	if !status.Valid() {
		return nil, common.ErrorValidation
	}
	return s.mutate(ctx, id, func(p *models.Post, now time.Time) {
		p.SetStatus(status, now)
	})
}

func (s *PostService) Publish(ctx context.Context, id string) (*models.Post, error) {
	return s.SetStatus(ctx, id, models.StatusPublished)
}

func (s *PostService) Unpublish(ctx context.Context, id string) (*models.Post, error) {
	return s.SetStatus(ctx, id, models.StatusDraft)
}

// Delete removes the post together with its comments.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Posts(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	return nil
}

// AuthorizeOwner admits principal to mutate the post when it is an admin or
// the post's author. An absent post yields common.ErrorNotFound before any
// ownership check.
func (s *PostService) AuthorizeOwner(ctx context.Context, id string, principal *models.User) error {
	if principal == nil {
		return common.ErrorUnauthorized
	}
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanModify(principal, post.Author.ID) {
		return common.ErrorForbidden
	}
	return nil
}

func (s *PostService) mutate(ctx context.Context, id string, fn func(p *models.Post, now time.Time)) (*models.Post, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	var post *models.Post
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		p, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		fn(p, s.now())
		if err := repo.Update(ctx, p); err != nil {
			return err
		}
		post = p
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating post: %w", err)
	}
	return post, nil
}

// normalizeTags trims every tag and drops empty ones. The result is never nil.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
