package catalog

import (
	"context"
	"time"
)

// Product is a storefront catalog entry.
// An empty Slug means the product has not been assigned one yet.
type Product struct {
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Subtitle      string    `json:"subtitle,omitempty"`
	Description   string    `json:"description,omitempty"`
	CPSLink       string    `json:"cps_link"`
	DownloadURL   string    `json:"download_url,omitempty"`
	CoverImage    string    `json:"cover_image,omitempty"`
	Logo          string    `json:"logo,omitempty"`
	OriginalPrice float64   `json:"original_price"`
	SalePrice     float64   `json:"sale_price"`
	ViewCount     int64     `json:"view_count"`
	IsActive      bool      `json:"is_active"`
}

// SlugCandidate is a product waiting for a slug.
type SlugCandidate struct {
	ID   string
	Name string
}

// SlugStore is the persistence the slug pipeline depends on.
//
// FindBySlug returns ErrNotFound when no product holds slug.
// ListMissingSlug returns products whose slug is NULL or empty, in a stable order.
// AssignSlug returns ErrSlugConflict when a storage-level uniqueness
// constraint rejects the write and ErrNotFound for an unknown id.
// Errors meaning the store cannot be reached wrap ErrStoreUnavailable.
type SlugStore interface {
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	ListMissingSlug(ctx context.Context) ([]SlugCandidate, error)
	AssignSlug(ctx context.Context, id, slug string) error
}

// Store is the full product persistence used by Service.
// Create returns ErrSlugConflict when the slug is already taken.
type Store interface {
	SlugStore
	Create(ctx context.Context, p *Product) error
	IncrementViews(ctx context.Context, id string) error
}
