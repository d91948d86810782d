package memory

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/google/uuid"
)

type PostsRepository struct {
	s *Store
}

func NewPostsRepository(s *Store) *PostsRepository {
	return &PostsRepository{s: s}
}

func (r *PostsRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[post.Author.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	post.ID = uuid.NewString()
	if post.Tags == nil {
		post.Tags = []string{}
	}
	r.s.posts[post.ID] = clonePost(post)
	return post, nil
}

func (r *PostsRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := clonePost(p)
	c.Author = r.s.author(p.Author.ID)
	return c, nil
}

// GetForUpdate is GetByID; the in-memory store has no row locks.
func (r *PostsRepository) GetForUpdate(ctx context.Context, id string) (*models.Post, error) {
	return r.GetByID(ctx, id)
}

func (r *PostsRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.posts[id]
	return ok, nil
}

func (r *PostsRepository) Update(ctx context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.posts[post.ID]
	if !ok {
		return common.ErrorNotFound
	}
	c := clonePost(post)
	c.Author = old.Author
	c.CreatedAt = old.CreatedAt
	r.s.posts[post.ID] = c
	return nil
}

func (r *PostsRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.posts, id)
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

func (r *PostsRepository) List(ctx context.Context, q models.PostQuery) ([]*models.Post, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.Post
	for _, p := range r.s.posts {
		if matchesPost(p, q) {
			c := clonePost(p)
			c.Author = r.s.author(p.Author.ID)
			matched = append(matched, c)
		}
	}
	sortPosts(matched)
	return page(matched, q.ListQuery), len(matched), nil
}
