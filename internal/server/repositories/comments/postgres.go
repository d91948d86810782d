// Package comments provides the PostgreSQL-backed comment repository.
package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgForeignKeyViolation = "23503"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateIfPostExists inserts comment in a single statement that only writes
// when its post is present. A missing post, including one deleted
// concurrently, yields common.ErrorNotFound.
func (r *PostgresRepository) CreateIfPostExists(ctx context.Context, comment *models.Comment) (*models.Comment, error) {

	query :=
		`INSERT INTO comments (content, author_id, post_id, created_at)
		 SELECT $1, $2, $3, $4
		 WHERE EXISTS (SELECT 1 FROM posts WHERE id = $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		comment.Content, comment.Author.ID, comment.PostID, comment.CreatedAt).Scan(&comment.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

// ListByPost returns one page of the post's comments, newest first, and
// the post's total comment count.
func (r *PostgresRepository) ListByPost(ctx context.Context, postID string, q models.ListQuery) ([]*models.Comment, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT c.id, c.content, c.post_id, c.created_at, u.id, u.name, u.email
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, postID, q.Limit, q.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to select comments: %w", err)
	}
	defer rows.Close()

	result := []*models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.Content, &c.PostID, &c.CreatedAt,
			&c.Author.ID, &c.Author.Name, &c.Author.Email,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}
