package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	dom "github.com/napworks/postboard-api/internal/domain"
)

// PostRepo provides post persistence.
type PostRepo interface {
	Create(ctx context.Context, p dom.Post) (dom.Post, error)
	Find(ctx context.Context, f dom.PostFilter) ([]dom.Post, error)
}

// PGPostRepo implements PostRepo with Postgres. Tags live in a text[] column.
type PGPostRepo struct {
	db *pgxpool.Pool
}

// NewPGPostRepo returns a new PGPostRepo.
func NewPGPostRepo(db *pgxpool.Pool) *PGPostRepo {
	return &PGPostRepo{db: db}
}

const postColumns = "id, user_id, post_name, description, upload_time, tags, image_url, created_at, updated_at"

func (r *PGPostRepo) Create(ctx context.Context, p dom.Post) (dom.Post, error) {
	query := `
		INSERT INTO posts (id, user_id, post_name, description, upload_time, tags, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + postColumns
	var out dom.Post
	err := r.db.QueryRow(ctx, query,
		p.ID, p.UserID, p.PostName, p.Description, p.UploadTime, p.Tags, p.ImageURL,
	).Scan(
		&out.ID, &out.UserID, &out.PostName, &out.Description, &out.UploadTime,
		&out.Tags, &out.ImageURL, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

// Find returns one page of posts matching the filter, in creation order.
// Search text matches post_name OR description case-insensitively; the date
// bounds are inclusive; tags match when the stored array overlaps the
// requested one. All conditions combine with AND.
func (r *PGPostRepo) Find(ctx context.Context, f dom.PostFilter) ([]dom.Post, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.SearchText != "" {
		p := arg("%" + f.SearchText + "%")
		conds = append(conds, fmt.Sprintf("(post_name ILIKE %s OR description ILIKE %s)", p, p))
	}
	if f.StartDate != nil {
		conds = append(conds, "upload_time >= "+arg(*f.StartDate))
	}
	if f.EndDate != nil {
		conds = append(conds, "upload_time <= "+arg(*f.EndDate))
	}
	if len(f.Tags) > 0 {
		conds = append(conds, "tags && "+arg(f.Tags))
	}

	query := "SELECT " + postColumns + " FROM posts"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at"
	query += " OFFSET " + arg(f.Offset())
	query += " LIMIT " + arg(f.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []dom.Post
	for rows.Next() {
		var p dom.Post
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.PostName, &p.Description, &p.UploadTime,
			&p.Tags, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
