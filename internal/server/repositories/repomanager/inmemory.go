package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/comments"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/posts"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves every repository from one memory.Store
// and ignores the DBTX it is given.
type InMemoryRepositoryManager struct {
	store *memory.Store
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: memory.NewStore()}
}

func (m *InMemoryRepositoryManager) Store() *memory.Store {
	return m.store
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return memory.NewUsersRepository(m.store)
}

func (m *InMemoryRepositoryManager) Posts(db dbx.DBTX) posts.Repository {
	return memory.NewPostsRepository(m.store)
}

func (m *InMemoryRepositoryManager) Comments(db dbx.DBTX) comments.Repository {
	return memory.NewCommentsRepository(m.store)
}
