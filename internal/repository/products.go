package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/softshop/internal/catalog"
	"github.com/dmitrymomot/softshop/pkg/db"
)

// Name of the partial unique index backing slug uniqueness.
const slugConstraint = "products_slug_key"

const productColumns = `id, name, COALESCE(slug, ''), subtitle, description, cps_link,
	download_url, cover_image, logo, original_price, sale_price, view_count,
	is_active, created_at, updated_at`

// ProductRepository is the PostgreSQL implementation of catalog.Store.
// Statements run inside the transaction carried by ctx when there is one.
type ProductRepository struct {
	pool *pgxpool.Pool
}

var _ catalog.Store = (*ProductRepository)(nil)

// NewProductRepository creates a repository over pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// FindBySlug returns the product holding slug, active or not.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	row := db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)

	p, err := scanProduct(row)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// GetByID returns the product with id.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	row := db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// ListMissingSlug returns products without a slug, oldest first.
func (r *ProductRepository) ListMissingSlug(ctx context.Context) ([]catalog.SlugCandidate, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx,
		`SELECT id, name FROM products
		WHERE slug IS NULL OR slug = ''
		ORDER BY created_at, id`)
	if err != nil {
		return nil, mapError(err)
	}

	candidates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.SlugCandidate, error) {
		var c catalog.SlugCandidate
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return candidates, nil
}

// AssignSlug sets the slug of product id.
func (r *ProductRepository) AssignSlug(ctx context.Context, id, slug string) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx,
		`UPDATE products SET slug = $2, updated_at = now() WHERE id = $1`, id, slug)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Create inserts p. Zero timestamps are filled by the database.
func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	err := db.Conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO products (
			id, name, slug, subtitle, description, cps_link, download_url,
			cover_image, logo, original_price, sale_price, is_active,
			created_at, updated_at
		) VALUES (
			$1, $2, NULLIF($3::text, ''), $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			COALESCE($13::timestamptz, now()), COALESCE($14::timestamptz, now())
		)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Slug, p.Subtitle, p.Description, p.CPSLink, p.DownloadURL,
		p.CoverImage, p.Logo, p.OriginalPrice, p.SalePrice, p.IsActive,
		nullTime(p.CreatedAt), nullTime(p.UpdatedAt),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// IncrementViews adds one to the view counter of product id.
func (r *ProductRepository) IncrementViews(ctx context.Context, id string) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx,
		`UPDATE products SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Subtitle, &p.Description, &p.CPSLink,
		&p.DownloadURL, &p.CoverImage, &p.Logo, &p.OriginalPrice, &p.SalePrice, &p.ViewCount,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// mapError translates driver errors into catalog sentinels.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return catalog.ErrNotFound
	case db.IsUniqueViolation(err, slugConstraint):
		return errors.Join(catalog.ErrSlugConflict, err)
	case db.IsConnectionError(err):
		return errors.Join(catalog.ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("repository: %w", err)
	}
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
