package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/barbershop/appointments-backend/internal/db"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Item, int, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{db: conn}
}

var (
	psql        = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	itemColumns = []string{
		"id", "uploaded_by", "title", "filename", "storage_path", "thumbnail_path", "content_type", "size", "created_at",
	}
)

func scanItem(row pgx.Row, extra ...any) (*Item, error) {
	var it Item
	dest := append([]any{
		&it.ID, &it.UploadedBy, &it.Title, &it.Filename, &it.StoragePath, &it.ThumbnailPath,
		&it.ContentType, &it.Size, &it.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Item, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	sql, args, err := psql.Select(append(itemColumns, "count(*) OVER() AS total_count")...).
		From("gallery_items").
		OrderBy("created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64((filter.Page - 1) * filter.PageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list gallery query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list gallery items failed: %w", err)
	}
	defer rows.Close()

	var (
		items []*Item
		total int
	)
	for rows.Next() {
		it, err := scanItem(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan gallery item failed: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list gallery items failed: %w", err)
	}
	return items, total, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	sql, args, err := psql.Select(itemColumns...).From("gallery_items").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get gallery item query failed: %w", err)
	}

	it, err := scanItem(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get gallery item failed: %w", err)
	}
	return it, nil
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	sql, args, err := psql.Insert("gallery_items").
		Columns("id", "uploaded_by", "title", "filename", "storage_path", "thumbnail_path", "content_type", "size").
		Values(it.ID, it.UploadedBy, it.Title, it.Filename, it.StoragePath, it.ThumbnailPath, it.ContentType, it.Size).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create gallery item query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&it.CreatedAt); err != nil {
		return fmt.Errorf("create gallery item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := psql.Delete("gallery_items").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete gallery item query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete gallery item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
