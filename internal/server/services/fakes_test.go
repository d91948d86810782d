package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	commentsrepo "github.com/dmitrijs2005/gophblog/internal/server/repositories/comments"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/memory"
	postsrepo "github.com/dmitrijs2005/gophblog/internal/server/repositories/posts"
	usersrepo "github.com/dmitrijs2005/gophblog/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:            "access",
		RefreshTokenSecret:           "refresh",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
}

// store seeds a memory.Store directly, bypassing the services.
type store struct {
	*memory.Store
}

func newStore() store {
	return store{memory.NewStore()}
}

func (s store) addUser(name, email string, role models.Role) *models.User {
	u, err := memory.NewUsersRepository(s.Store).Create(context.Background(), &models.User{Name: name, Email: email, Role: role})
	if err != nil {
		panic(err)
	}
	return u
}

func (s store) addPost(author *models.User, title string, status models.PostStatus, created time.Time) *models.Post {
	p := &models.Post{
		Title:     title,
		Content:   "content of " + title,
		Author:    models.Author{ID: author.ID, Name: author.Name, Email: author.Email},
		Tags:      []string{},
		CreatedAt: created,
	}
	p.SetStatus(status, created)
	p, err := memory.NewPostsRepository(s.Store).Create(context.Background(), p)
	if err != nil {
		panic(err)
	}
	return p
}

func (s store) commentCount(postID string) int {
	_, total, err := memory.NewCommentsRepository(s.Store).ListByPost(context.Background(), postID, models.ListQuery{Page: 1, Limit: 1})
	if err != nil {
		panic(err)
	}
	return total
}

type failingUsers struct {
	usersrepo.Repository
	err error
}

func (f failingUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, f.err }
func (f failingUsers) GetByEmail(context.Context, string) (*models.User, error)    { return nil, f.err }
func (f failingUsers) GetByID(context.Context, string) (*models.User, error)       { return nil, f.err }

type failingPostUpdates struct {
	postsrepo.Repository
	err error
}

func (f failingPostUpdates) Update(context.Context, *models.Post) error { return f.err }

type failingComments struct {
	commentsrepo.Repository
	err error
}

func (f failingComments) CreateIfPostExists(context.Context, *models.Comment) (*models.Comment, error) {
	return nil, f.err
}

func (f failingComments) ListByPost(context.Context, string, models.ListQuery) ([]*models.Comment, int, error) {
	return nil, 0, f.err
}

// fakeRepoManager serves memory repositories and swaps in failing ones when
// an error is set.
type fakeRepoManager struct {
	s store

	usersErr       error
	postsUpdateErr error
	commentsErr    error
}

func newFakeRepoManager(s store) *fakeRepoManager {
	return &fakeRepoManager{s: s}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository {
	r := memory.NewUsersRepository(m.s.Store)
	if m.usersErr != nil {
		return failingUsers{r, m.usersErr}
	}
	return r
}

func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository {
	r := memory.NewPostsRepository(m.s.Store)
	if m.postsUpdateErr != nil {
		return failingPostUpdates{r, m.postsUpdateErr}
	}
	return r
}

func (m *fakeRepoManager) Comments(db dbx.DBTX) commentsrepo.Repository {
	r := memory.NewCommentsRepository(m.s.Store)
	if m.commentsErr != nil {
		return failingComments{r, m.commentsErr}
	}
	return r
}
