// Package posts provides the PostgreSQL-backed post repository, including
// the filtered, paginated listing used by the public and "my posts" feeds.
package posts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

const selectColumns = `SELECT p.id, p.title, p.content, p.status, p.tags, p.created_at, p.updated_at, p.published_at,
		u.id, u.name, u.email
		FROM posts p JOIN users u ON u.id = p.author_id`

// PostgresRepository implements post storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*models.Post, error) {
	var (
		p         models.Post
		status    string
		tags      []byte
		published sql.NullTime
	)
	if err := row.Scan(
		&p.ID, &p.Title, &p.Content, &status, &tags, &p.CreatedAt, &p.UpdatedAt, &published,
		&p.Author.ID, &p.Author.Name, &p.Author.Email,
	); err != nil {
		return nil, err
	}

	st, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	p.Status = st

	p.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	if published.Valid {
		t := published.Time
		p.PublishedAt = &t
	}
	return &p, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func publishedAt(p *models.Post) sql.NullTime {
	if p.PublishedAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *p.PublishedAt, Valid: true}
}

// Create inserts post and fills in the generated id.
func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	tags, err := encodeTags(post.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	query :=
		`INSERT INTO posts (title, content, author_id, status, tags, created_at, updated_at, published_at)
		 VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8)
		 RETURNING id
		 `

	err = r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.Author.ID, string(post.Status), tags,
		post.CreatedAt, post.UpdatedAt, publishedAt(post)).Scan(&post.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return r.getOne(ctx, selectColumns+` WHERE p.id = $1`, id)
}

// GetForUpdate reads the post and locks its row until the surrounding
// transaction ends.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.Post, error) {
	return r.getOne(ctx, selectColumns+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, id string) (*models.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

// Update writes every mutable column of post. Author and creation time
// never change.
func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	tags, err := encodeTags(post.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	query :=
		`UPDATE posts
		 SET title = $2, content = $3, status = $4, tags = $5::jsonb, updated_at = $6, published_at = $7
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, string(post.Status), tags, post.UpdatedAt, publishedAt(post))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes the post; its comments go with it through the foreign key.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// List returns one page of posts matching q, newest first, and the total
// number of matches.
func (r *PostgresRepository) List(ctx context.Context, q models.PostQuery) ([]*models.Post, int, error) {
	where, args := buildFilter(q)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	n := len(args)
	query := selectColumns + where +
		fmt.Sprintf(` ORDER BY p.created_at DESC, p.id LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to select posts: %w", err)
	}
	defer rows.Close()

	result := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}
