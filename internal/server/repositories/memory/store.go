// Package memory provides in-memory implementations of the users, posts and
// comments repositories sharing one Store. It backs the in-memory
// RepositoryManager used by tests and local runs without PostgreSQL.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// Store is the shared state behind the in-memory repositories. Deleting a
// post removes its comments, as the foreign key does in PostgreSQL.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	posts    map[string]*models.Post
	comments map[string]*models.Comment
}

func NewStore() *Store {
	return &Store{
		users:    map[string]*models.User{},
		posts:    map[string]*models.Post{},
		comments: map[string]*models.Comment{},
	}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &c
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Tags = append([]string{}, p.Tags...)
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		c.PublishedAt = &t
	}
	return &c
}

func cloneComment(c *models.Comment) *models.Comment {
	cc := *c
	return &cc
}

// author refreshes the embedded author summary from the users table.
func (s *Store) author(id string) models.Author {
	if u, ok := s.users[id]; ok {
		return models.Author{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return models.Author{ID: id}
}

func matchesPost(p *models.Post, q models.PostQuery) bool {
	if q.Status != nil && p.Status != *q.Status {
		return false
	}
	if q.AuthorID != "" && p.Author.ID != q.AuthorID {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Content), needle)
}

func page[T any](items []T, q models.ListQuery) []T {
	out := []T{}
	for i := q.Offset(); i >= 0 && i < len(items) && len(out) < q.Limit; i++ {
		out = append(out, items[i])
	}
	return out
}

func sortPosts(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID < posts[j].ID
	})
}

func sortComments(comments []*models.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
}
